package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/aezell/docsync/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req service.AnalyzeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.RepoURL) == "" {
		writeError(w, http.StatusBadRequest, "repository URL is required")
		return
	}
	owner, repo, ok := splitRepo(req.RepoURL)
	if !ok {
		writeError(w, http.StatusBadRequest, "could not identify the repository from the URL")
		return
	}

	if !s.wait(r) {
		return
	}
	log.Printf("analyze %s/%s", owner, repo)
	writeJSON(w, http.StatusOK, cannedAnalysis(req.RepoURL, repo))
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	var req service.CommitRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.RepoURL) == "" || req.ReadmeContent == "" {
		writeError(w, http.StatusBadRequest, "repository URL and document are required")
		return
	}
	owner, repo, ok := splitRepo(req.RepoURL)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid repository URL")
		return
	}

	if !s.wait(r) {
		return
	}
	s.mu.Lock()
	s.commits[req.RepoURL] = req.ReadmeContent
	s.mu.Unlock()

	log.Printf("commit %s/%s (%d bytes)", owner, repo, len(req.ReadmeContent))
	writeJSON(w, http.StatusOK, service.CommitResponse{
		Success: true,
		Message: "README.md committed successfully!",
		URL:     fmt.Sprintf("https://github.com/%s/%s/blob/main/README.md", owner, repo),
	})
}

// splitRepo takes owner and repository from the last two path segments.
func splitRepo(url string) (owner, repo string, ok bool) {
	parts := strings.Split(strings.TrimRight(strings.TrimSpace(url), "/"), "/")
	if len(parts) < 2 {
		return "", "", false
	}
	owner = parts[len(parts)-2]
	repo = strings.TrimSuffix(parts[len(parts)-1], ".git")
	if owner == "" || repo == "" || strings.HasSuffix(owner, ":") {
		return "", "", false
	}
	return owner, repo, true
}
