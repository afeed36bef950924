package api

import (
	"fmt"

	"github.com/aezell/docsync/internal/service"
)

var cannedIssues = []service.IssueRecord{
	{
		Title:      "SQL injection in authentication",
		Branch:     "feature/login",
		Severity:   "critical",
		Filepath:   "src/auth/service.js",
		CodeBefore: "if (user.password === password) {\n  // Logic\n}",
		CodeAfter:  "if (await bcrypt.compare(password, user.password)) {\n  // Logic\n}",
		Problem:    "The password was compared in plain text, which is a serious security flaw.",
		Suggestion: "The fix uses `bcrypt.compare` to compare the password safely, preventing brute force and rainbow table attacks.",
		Type:       "Security",
	},
	{
		Title:      "Deprecated dependency in use",
		Branch:     "main",
		Severity:   "medium",
		Filepath:   "package.json",
		CodeBefore: `"request": "^2.88.2"`,
		CodeAfter:  `"axios": "^1.6.0"`,
		Problem:    "The 'request' library is no longer maintained and may contain unpatched vulnerabilities.",
		Suggestion: "Replacing it with a modern, actively maintained library such as 'axios' improves security and maintainability.",
		Type:       "Maintenance",
	},
	{
		Title:      "Unused variable",
		Branch:     "develop",
		Severity:   "low",
		Filepath:   "src/utils/helpers.js",
		CodeBefore: "let tempUser = null;\nconsole.log(tempUser);",
		Problem:    "Dead or unnecessary code can confuse new developers and adds to the complexity of the codebase.",
		Suggestion: "Removing unused variables and code keeps the codebase clean and easier to understand.",
		Type:       "Style",
	},
}

const cannedReadme = "<!-- Generated by DocSync AI from the latest commits -->\n" +
	"# %s\n\n" +
	"![License badge](https://img.shields.io/badge/license-MIT-blue.svg)\n\n" +
	"## Description\n\n" +
	"This is a sample project generated by DocSync AI. It solves problem X and offers solution Y, " +
	"using modern technology to deliver performance and security.\n\n" +
	"## Installation\n\n" +
	"Follow the steps below to set up the development environment:\n\n" +
	"1. Clone the repository:\n```bash\ngit clone %s\n```\n\n" +
	"2. Install the dependencies:\n```bash\nnpm install\n```\n\n" +
	"3. Start the development server:\n```bash\nnpm start\n```\n"

func cannedAnalysis(repoURL, name string) service.AnalyzeResponse {
	bugs := make([]service.IssueRecord, len(cannedIssues))
	copy(bugs, cannedIssues)
	return service.AnalyzeResponse{
		Readme: fmt.Sprintf(cannedReadme, name, repoURL),
		Bugs:   bugs,
	}
}
