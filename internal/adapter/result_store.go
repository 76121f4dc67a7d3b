package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "guut.dev/pkg/guut/internal/model"
)

// ResultStore persists session and campaign results below a root directory.
//
// Layout:
//
//	<root>/sessions/<id>.json
//	<root>/conversations/<id>.json, <id>.txt
//	<root>/status.yaml, queue.yaml
//	<root>/campaign.json, summary.yaml
type ResultStore interface {
	Root() m.Path
	SaveSession(ctx context.Context, result m.SessionResult) (m.Path, error)
	LoadSession(ctx context.Context, path m.Path) (m.SessionResult, error)
	SaveConversation(ctx context.Context, id string, messages []m.Message) error
	SaveCampaignStatus(ctx context.Context, status m.CampaignStatus) error
	SaveCampaign(ctx context.Context, result m.CampaignResult) error
	LoadCampaign(ctx context.Context) (m.CampaignResult, error)
	SaveSummary(ctx context.Context, summary m.CampaignSummary) error
	LoadSummary(ctx context.Context) (m.CampaignSummary, error)
}

// LocalResultStore implements ResultStore on the local disk.
type LocalResultStore struct {
	root m.Path
}

// NewLocalResultStore constructs a store rooted at root.
func NewLocalResultStore(root m.Path) *LocalResultStore {
	return &LocalResultStore{root: root}
}

// Root returns the root directory.
func (s *LocalResultStore) Root() m.Path {
	return s.root
}

func (s *LocalResultStore) path(elem ...string) string {
	return filepath.Join(append([]string{string(s.root)}, elem...)...)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	return writeFile(path, data)
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	return writeFile(path, data)
}

func readJSON(path string, v any) error {
	// #nosec G304 - path is inside the result store
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

// SaveSession writes a session result and returns its path.
func (s *LocalResultStore) SaveSession(_ context.Context, result m.SessionResult) (m.Path, error) {
	path := s.path("sessions", result.ID+".json")

	if err := writeJSON(path, result); err != nil {
		return "", err
	}

	return m.Path(path), nil
}

// LoadSession reads a session result. A bare session ID is resolved inside
// the store.
func (s *LocalResultStore) LoadSession(_ context.Context, path m.Path) (m.SessionResult, error) {
	p := string(path)
	if !strings.ContainsRune(p, filepath.Separator) && !strings.HasSuffix(p, ".json") {
		p = s.path("sessions", p+".json")
	}

	var result m.SessionResult
	if err := readJSON(p, &result); err != nil {
		return m.SessionResult{}, err
	}

	return result, nil
}

// SaveConversation writes a conversation as JSON and as readable text.
func (s *LocalResultStore) SaveConversation(_ context.Context, id string, messages []m.Message) error {
	if err := writeJSON(s.path("conversations", id+".json"), messages); err != nil {
		return err
	}

	return writeFile(s.path("conversations", id+".txt"), []byte(FormatConversation(messages)))
}

// FormatConversation renders messages for humans.
func FormatConversation(messages []m.Message) string {
	var b strings.Builder

	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}

		fmt.Fprintf(&b, "==================== %s", strings.ToUpper(string(msg.Role)))

		if msg.Tag != "" {
			fmt.Fprintf(&b, " [%s]", msg.Tag)
		}

		b.WriteString(" ====================\n\n")
		b.WriteString(msg.Content)
	}

	b.WriteString("\n")

	return b.String()
}

// SaveCampaignStatus writes status.yaml and queue.yaml.
func (s *LocalResultStore) SaveCampaignStatus(_ context.Context, status m.CampaignStatus) error {
	queue := status.Queue
	status.Queue = nil

	if err := writeYAML(s.path("status.yaml"), status); err != nil {
		return err
	}

	return writeYAML(s.path("queue.yaml"), queue)
}

// SaveCampaign writes campaign.json.
func (s *LocalResultStore) SaveCampaign(_ context.Context, result m.CampaignResult) error {
	return writeJSON(s.path("campaign.json"), result)
}

// LoadCampaign reads campaign.json.
func (s *LocalResultStore) LoadCampaign(_ context.Context) (m.CampaignResult, error) {
	var result m.CampaignResult
	if err := readJSON(s.path("campaign.json"), &result); err != nil {
		return m.CampaignResult{}, err
	}

	return result, nil
}

// SaveSummary writes summary.yaml.
func (s *LocalResultStore) SaveSummary(_ context.Context, summary m.CampaignSummary) error {
	return writeYAML(s.path("summary.yaml"), summary)
}

// LoadSummary reads summary.yaml.
func (s *LocalResultStore) LoadSummary(_ context.Context) (m.CampaignSummary, error) {
	// #nosec G304 - path is inside the result store
	data, err := os.ReadFile(s.path("summary.yaml"))
	if err != nil {
		return m.CampaignSummary{}, err
	}

	var summary m.CampaignSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return m.CampaignSummary{}, fmt.Errorf("failed to decode summary: %w", err)
	}

	return summary, nil
}
