package gitremote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ContentForge/internal/ports"
)

const defaultAPIBaseURL = "https://api.github.com"

// Committer pushes a batch of local files to a GitHub-hosted tree using the
// object-graph protocol: blobs, then one tree, then one commit, then the ref
// update. Every step consumes the identifier returned by the previous one; a
// failure at any step aborts before the ref moves, so the remote either gains
// exactly one commit with the whole batch or stays unchanged.
type Committer struct {
	baseURL string
	token   string
	repo    string // owner/name
	workDir string // root that relative tree paths are computed against
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.Committer = (*Committer)(nil)

// New wires the remote repository target. baseURL falls back to the public
// GitHub API; workDir falls back to the process working directory.
func New(baseURL, token, repo, workDir string, client *http.Client, logger *slog.Logger) *Committer {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Committer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		repo:    repo,
		workDir: workDir,
		client:  client,
		logger:  logger,
	}
}

type treeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// Commit lands the files as one commit on the default branch.
func (c *Committer) Commit(ctx context.Context, paths []string, message string) error {
	if c.token == "" || c.repo == "" {
		return fmt.Errorf("committer not configured")
	}
	if len(paths) == 0 {
		return fmt.Errorf("empty commit batch")
	}

	branch, err := c.defaultBranch(ctx)
	if err != nil {
		return fmt.Errorf("resolve default branch: %w", err)
	}

	tipCommit, err := c.branchTip(ctx, branch)
	if err != nil {
		return fmt.Errorf("resolve branch tip: %w", err)
	}

	baseTree, err := c.commitTree(ctx, tipCommit)
	if err != nil {
		return fmt.Errorf("resolve base tree: %w", err)
	}

	entries := make([]treeEntry, 0, len(paths))
	for _, path := range paths {
		blobSHA, relPath, err := c.createBlob(ctx, path)
		if err != nil {
			return fmt.Errorf("create blob for %s: %w", path, err)
		}
		entries = append(entries, treeEntry{Path: relPath, Mode: "100644", Type: "blob", SHA: blobSHA})
	}

	treeSHA, err := c.createTree(ctx, baseTree, entries)
	if err != nil {
		return fmt.Errorf("create tree: %w", err)
	}

	commitSHA, err := c.createCommit(ctx, message, treeSHA, tipCommit)
	if err != nil {
		return fmt.Errorf("create commit: %w", err)
	}

	if err := c.updateRef(ctx, branch, commitSHA); err != nil {
		return fmt.Errorf("update ref: %w", err)
	}

	c.logger.Info("pushed commit", "sha", commitSHA, "files", len(paths), "branch", branch)
	return nil
}

func (c *Committer) defaultBranch(ctx context.Context) (string, error) {
	var repo struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := c.do(ctx, http.MethodGet, "/repos/"+c.repo, nil, &repo); err != nil {
		return "", err
	}
	if repo.DefaultBranch == "" {
		return "", fmt.Errorf("repository reported no default branch")
	}
	return repo.DefaultBranch, nil
}

func (c *Committer) branchTip(ctx context.Context, branch string) (string, error) {
	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := c.do(ctx, http.MethodGet, "/repos/"+c.repo+"/git/refs/heads/"+branch, nil, &ref); err != nil {
		return "", err
	}
	return ref.Object.SHA, nil
}

func (c *Committer) commitTree(ctx context.Context, commitSHA string) (string, error) {
	var commit struct {
		Tree struct {
			SHA string `json:"sha"`
		} `json:"tree"`
	}
	if err := c.do(ctx, http.MethodGet, "/repos/"+c.repo+"/git/commits/"+commitSHA, nil, &commit); err != nil {
		return "", err
	}
	return commit.Tree.SHA, nil
}

func (c *Committer) createBlob(ctx context.Context, path string) (sha, relPath string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}

	relPath, err = c.treePath(path)
	if err != nil {
		return "", "", err
	}

	var blob struct {
		SHA string `json:"sha"`
	}
	payload := map[string]string{"content": string(content), "encoding": "utf-8"}
	if err := c.do(ctx, http.MethodPost, "/repos/"+c.repo+"/git/blobs", payload, &blob); err != nil {
		return "", "", err
	}
	return blob.SHA, relPath, nil
}

func (c *Committer) createTree(ctx context.Context, baseTree string, entries []treeEntry) (string, error) {
	var tree struct {
		SHA string `json:"sha"`
	}
	payload := map[string]any{"base_tree": baseTree, "tree": entries}
	if err := c.do(ctx, http.MethodPost, "/repos/"+c.repo+"/git/trees", payload, &tree); err != nil {
		return "", err
	}
	return tree.SHA, nil
}

func (c *Committer) createCommit(ctx context.Context, message, treeSHA, parent string) (string, error) {
	var commit struct {
		SHA string `json:"sha"`
	}
	payload := map[string]any{"message": message, "tree": treeSHA, "parents": []string{parent}}
	if err := c.do(ctx, http.MethodPost, "/repos/"+c.repo+"/git/commits", payload, &commit); err != nil {
		return "", err
	}
	return commit.SHA, nil
}

func (c *Committer) updateRef(ctx context.Context, branch, commitSHA string) error {
	payload := map[string]string{"sha": commitSHA}
	return c.do(ctx, http.MethodPatch, "/repos/"+c.repo+"/git/refs/heads/"+branch, payload, nil)
}

// treePath converts a local file path into the slash-separated path used in
// the remote tree.
func (c *Committer) treePath(path string) (string, error) {
	root := c.workDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working dir: %w", err)
		}
		root = cwd
	}

	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path)), nil
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("relativize path: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

func (c *Committer) do(ctx context.Context, method, path string, payload, v any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(detail)))
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
