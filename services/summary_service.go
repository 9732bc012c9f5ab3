package services

import (
	"context"
	"encoding/json"

	"text-summary/config"
	"text-summary/dto"
	"text-summary/eventbus"
	"text-summary/events"
	"text-summary/logger"
	"text-summary/models"
	"text-summary/parser"
	"text-summary/renderer"
	"text-summary/repositories"
	"text-summary/summarizer"
)

// SummaryService encapsulates business logic for summary records and
// owns the asynchronous generation routine.
type SummaryService struct {
	repo       *repositories.TextSummaryRepository
	summarizer *summarizer.Summarizer
	bus        eventbus.EventBus
}

// NewSummaryService wires the service. The bus may be nil when no
// asynchronous trigger is wanted (callers then invoke GenerateSummary
// themselves).
func NewSummaryService(repo *repositories.TextSummaryRepository, s *summarizer.Summarizer, bus eventbus.EventBus) *SummaryService {
	return &SummaryService{repo: repo, summarizer: s, bus: bus}
}

// Create persists a new record with an empty summary and publishes the
// generation-trigger event.
func (s *SummaryService) Create(ctx context.Context, url string) (*dto.SummaryDTO, error) {
	m := &models.TextSummary{URL: url}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if s.bus != nil {
		evt, err := eventbus.NewJSONEvent("", events.NewSummaryRequested(m.ID, m.URL))
		if err != nil {
			return nil, err
		}
		if err := s.bus.Publish(ctx, eventbus.TopicSummaryEvents.Base(), evt); err != nil {
			logger.Log.Errorf("failed to publish summary requested event for id=%d: %v", m.ID, err)
		}
	}

	d := dto.NewSummaryDTO(*m)
	return &d, nil
}

// GetByID loads a record. gorm.ErrRecordNotFound passes through.
func (s *SummaryService) GetByID(ctx context.Context, id int64) (*dto.SummaryDTO, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.NewSummaryDTO(*m)
	return &d, nil
}

func (s *SummaryService) List(ctx context.Context) ([]dto.SummaryDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SummaryDTO, 0, len(items))
	for _, m := range items {
		out = append(out, dto.NewSummaryDTO(m))
	}
	return out, nil
}

// Update overwrites url and summary of an existing record.
func (s *SummaryService) Update(ctx context.Context, id int64, url, summary string) (*dto.SummaryDTO, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.URL = url
	m.Summary = summary
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	d := dto.NewSummaryDTO(*m)
	return &d, nil
}

// Delete removes a record and returns its last state.
func (s *SummaryService) Delete(ctx context.Context, id int64) (*dto.SummaryDTO, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	d := dto.NewSummaryDTO(*m)
	return &d, nil
}

// GenerateSummary fetches the document at url, derives an extractive
// summary, and stores it on the record with the given id. A missing
// record is a silent no-op. Fetch, parse, and summarization failures
// propagate as-is, and in every failure case no database write occurs.
func (s *SummaryService) GenerateSummary(ctx context.Context, id int64, url string) error {
	cfg := config.GetConfig().Fetch

	var htmlStr string
	var err error
	if cfg.UseHeadless {
		htmlStr, err = renderer.RenderHTML(ctx, url)
	} else {
		htmlStr, err = renderer.FetchHTML(ctx, url)
	}
	if err != nil {
		return err
	}

	article, err := parser.ParseArticle(htmlStr)
	if err != nil {
		return err
	}

	summary, err := s.summarizer.Summarize(article.Title, article.PlainTextContent)
	if err != nil {
		return err
	}

	updated, err := s.repo.UpdateSummary(ctx, id, summary)
	if err != nil {
		return err
	}
	if !updated {
		logger.Log.Debugf("no summary record with id=%d, skipping write", id)
	}
	return nil
}

// HandleSummaryRequested is the bus subscriber that runs the generation
// routine for each requested summary.
func (s *SummaryService) HandleSummaryRequested(ctx context.Context, event eventbus.Event) error {
	var evt events.SummaryRequestedEvent
	if err := json.Unmarshal(event.Payload, &evt); err != nil {
		return err
	}
	return s.GenerateSummary(ctx, evt.SummaryID, evt.URL)
}
