package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/config"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

// Request is the input contract sent to the recommender for one group.
type Request struct {
	Level               int                 `json:"level"`
	Semester            string              `json:"semester"`
	GroupName           string              `json:"group_name"`
	GroupStudentCount   int                 `json:"group_student_count"`
	StudentsPerCourse   map[string]int      `json:"students_per_course"`
	BlockedSlots        []models.TimeWindow `json:"blocked_slots"`
	AvailableRooms      []string            `json:"available_rooms"`
	Rules               []string            `json:"rules"`
	ObjectivePriorities map[string]float64  `json:"objective_priorities,omitempty"`
}

// Client produces candidate section lists. Output is untrusted and always
// re-validated by the caller.
type Client interface {
	Recommend(ctx context.Context, req Request) ([]models.Section, error)
}

// GeminiClient calls the Gemini API to draft timetable sections.
type GeminiClient struct {
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  *zap.Logger
}

// NewGeminiClient wires the Gemini generative model from configuration.
func NewGeminiClient(ctx context.Context, cfg config.RecommenderConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("recommender api key is not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.ResponseMIMEType = "application/json"

	return &GeminiClient{model: model, timeout: cfg.Timeout, logger: logger}, nil
}

// Recommend asks the model for a candidate section list and strictly parses
// the reply. Transport failures surface as recommender-unavailable errors;
// unparseable replies as invalid-reply errors. Neither is ever treated as a
// trusted schedule.
func (c *GeminiClient) Recommend(ctx context.Context, req Request) ([]models.Section, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build recommender prompt")
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRecommenderUnavailable.Code, appErrors.ErrRecommenderUnavailable.Status, "recommender call failed")
	}

	raw := collectText(resp)
	if raw == "" {
		return nil, appErrors.Clone(appErrors.ErrRecommenderInvalidReply, "recommender returned an empty reply")
	}

	sections, err := ParseSections([]byte(raw))
	if err != nil {
		c.logger.Warn("recommender reply rejected", zap.Error(err), zap.String("group", req.GroupName))
		return nil, appErrors.Wrap(err, appErrors.ErrRecommenderInvalidReply.Code, appErrors.ErrRecommenderInvalidReply.Status, "recommender returned malformed sections")
	}
	return sections, nil
}

func buildPrompt(req Request) (string, error) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("You are a university timetable planner. Produce a JSON array of sections for the cohort described below.\n")
	sb.WriteString("Each element must be an object with: course_code, section_label, timeslot {day, start, end}, room, allocated_student_ids, capacity.\n")
	sb.WriteString("Days are full uppercase English names (MONDAY..SUNDAY); times are 24h HH:MM strings.\n")
	sb.WriteString("Never place a section inside a blocked slot and never reuse a room at the same day and start time.\n")
	sb.WriteString("Schedule exactly one section per course. Reply with the JSON array only.\n\n")
	sb.WriteString("Cohort:\n")
	sb.Write(payload)
	return sb.String(), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		// first candidate is enough
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String()
}
