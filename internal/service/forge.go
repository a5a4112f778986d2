package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/timmy/haikuforge/internal/domain"
	"github.com/timmy/haikuforge/internal/logger"
)

// ArchiveStore is the append-only poem archive.
// Implementations report failures as *domain.StoreError.
type ArchiveStore interface {
	Append(ctx context.Context, poem domain.Poem) error
	ListAll(ctx context.Context) ([]domain.Poem, error)
	Backend() string
}

// State is a step of a single submission.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitted  State = "submitted"
	StateGenerating State = "generating"
	StatePersisting State = "persisting"
	StateRendering  State = "rendering"
)

// Submission is one user action: the topic field and whether the
// submit control was pressed.
type Submission struct {
	Topic   string
	Pressed bool
}

// MessageLevel classifies a user-visible message.
type MessageLevel string

const (
	LevelError   MessageLevel = "error"
	LevelSuccess MessageLevel = "success"
)

// Message is a notice shown to the user after a submission.
type Message struct {
	Level MessageLevel `json:"level"`
	Text  string       `json:"text"`
}

// GalleryItem is one archived poem decorated for display.
type GalleryItem struct {
	domain.Poem
	Index int   `json:"index"`
	Color Color `json:"color"`
}

// Gallery is the rendered archive. Err is set when listing failed, in which
// case Items is empty.
type Gallery struct {
	Items []GalleryItem `json:"items"`
	Err   error         `json:"-"`
}

// Empty reports whether there is nothing to show.
func (g Gallery) Empty() bool {
	return len(g.Items) == 0
}

// Outcome is everything the presentation layer needs after one interaction.
type Outcome struct {
	Topic         string
	Accepted      bool
	Poem          *domain.Poem
	Color         Color
	Saved         bool
	GenerationErr error
	SaveErr       error
	Gallery       Gallery
	Trace         []State
}

// Messages returns the user-visible notices in the order they occurred.
func (o *Outcome) Messages() []Message {
	var msgs []Message
	if o.GenerationErr != nil {
		msgs = append(msgs, Message{Level: LevelError, Text: "Haiku generation failed: " + causeOf(o.GenerationErr)})
	}
	if o.SaveErr != nil {
		msgs = append(msgs, Message{Level: LevelError, Text: "Failed to save haiku: " + causeOf(o.SaveErr)})
	}
	if o.Saved {
		msgs = append(msgs, Message{Level: LevelSuccess, Text: "Haiku captured in the digital scroll!"})
	}
	if o.Gallery.Err != nil {
		msgs = append(msgs, Message{Level: LevelError, Text: "Archive retrieval failed: " + causeOf(o.Gallery.Err)})
	}
	return msgs
}

// ForgeService runs the topic → haiku → archive → gallery workflow.
type ForgeService struct {
	generator Generator
	archive   ArchiveStore
}

// NewForgeService creates the workflow over injected collaborators.
// Parameters:
//   - generator: text-generation client.
//   - archive: poem archive.
//
// Returns:
//   - *ForgeService: workflow instance; safe for concurrent use when its
//     collaborators are.
func NewForgeService(generator Generator, archive ArchiveStore) *ForgeService {
	return &ForgeService{generator: generator, archive: archive}
}

// Provider returns the configured generation provider name.
func (s *ForgeService) Provider() string {
	return s.generator.Provider()
}

// Backend returns the configured archive backend name.
func (s *ForgeService) Backend() string {
	return s.archive.Backend()
}

// Submit processes one interaction to completion. A submission without a
// press or with a blank topic touches neither the generator nor the archive
// and only renders the gallery. No error escapes: failures are recorded on
// the Outcome.
func (s *ForgeService) Submit(ctx context.Context, sub Submission) *Outcome {
	topic := strings.TrimSpace(sub.Topic)
	out := &Outcome{Topic: topic, Trace: []State{StateIdle}}

	if sub.Pressed && topic != "" {
		out.Accepted = true
		out.Trace = append(out.Trace, StateSubmitted)
		ctx = logger.SetTopic(ctx, topic)
		s.forge(ctx, out)
	}

	out.Trace = append(out.Trace, StateRendering)
	out.Gallery = s.Gallery(ctx)
	out.Trace = append(out.Trace, StateIdle)
	return out
}

func (s *ForgeService) forge(ctx context.Context, out *Outcome) {
	out.Trace = append(out.Trace, StateGenerating)

	start := time.Now()
	body, err := s.generator.Generate(ctx, out.Topic)
	if err != nil {
		out.GenerationErr = asGenerationError(s.generator.Provider(), err)
		logger.With(logger.Fields{logger.FieldProvider: s.generator.Provider()}).
			WithDuration(start).WithStatus("failed").
			Error(ctx, "Haiku generation failed: %v", err)
		return
	}
	logger.With(logger.Fields{logger.FieldProvider: s.generator.Provider()}).
		WithDuration(start).WithStatus("ok").
		Info(ctx, "Haiku generated")

	poem, err := domain.NewPoem(out.Topic, body)
	if err != nil {
		out.GenerationErr = asGenerationError(s.generator.Provider(), err)
		logger.CtxError(ctx, "Generated haiku rejected: %v", err)
		return
	}
	out.Poem = &poem
	out.Color = RandomColor()

	out.Trace = append(out.Trace, StatePersisting)
	start = time.Now()
	if err := s.archive.Append(ctx, poem); err != nil {
		out.SaveErr = asStoreError(s.archive.Backend(), domain.StoreOpAppend, err)
		logger.With(logger.Fields{logger.FieldBackend: s.archive.Backend()}).
			WithDuration(start).WithStatus("failed").
			Error(ctx, "Failed to save haiku: %v", err)
		return
	}
	out.Saved = true
	logger.With(logger.Fields{logger.FieldBackend: s.archive.Backend()}).
		WithDuration(start).WithStatus("ok").
		Info(ctx, "Haiku saved")
}

// Gallery lists the whole archive and assigns display colors. A listing
// failure yields an empty gallery carrying the error.
func (s *ForgeService) Gallery(ctx context.Context) Gallery {
	start := time.Now()
	poems, err := s.archive.ListAll(ctx)
	if err != nil {
		logger.With(logger.Fields{logger.FieldBackend: s.archive.Backend()}).
			WithDuration(start).WithStatus("failed").
			Error(ctx, "Archive retrieval failed: %v", err)
		return Gallery{Items: []GalleryItem{}, Err: asStoreError(s.archive.Backend(), domain.StoreOpList, err)}
	}

	items := make([]GalleryItem, len(poems))
	for i, p := range poems {
		items[i] = GalleryItem{Poem: p, Index: i, Color: ColorFor(i)}
	}
	logger.With(logger.Fields{logger.FieldBackend: s.archive.Backend()}).
		WithDuration(start).WithCount(len(items)).
		Debug(ctx, "Archive listed")
	return Gallery{Items: items}
}

func asGenerationError(provider string, err error) error {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return &domain.GenerationError{Provider: provider, Err: err}
}

func asStoreError(backend string, op domain.StoreOp, err error) error {
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		return storeErr
	}
	return &domain.StoreError{Backend: backend, Op: op, Err: err}
}

// causeOf strips the typed wrapper so user messages show the underlying reason.
func causeOf(err error) string {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) && genErr.Err != nil {
		return genErr.Err.Error()
	}
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) && storeErr.Err != nil {
		return storeErr.Err.Error()
	}
	return fmt.Sprint(err)
}
