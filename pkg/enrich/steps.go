package enrich

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-pkgz/lgr"

	"github.com/reviewscope/reviewscope/pkg/domain"
	"github.com/reviewscope/reviewscope/pkg/llm"
	"github.com/reviewscope/reviewscope/pkg/repository"
)

//go:generate moq -out mocks/translator.go -pkg mocks -skip-ensure -fmt goimports . Translator
//go:generate moq -out mocks/review_analyzer.go -pkg mocks -skip-ensure -fmt goimports . ReviewAnalyzer
//go:generate moq -out mocks/video_analyzer.go -pkg mocks -skip-ensure -fmt goimports . VideoAnalyzer

// Translator translates a text into english
type Translator interface {
	Translate(ctx context.Context, text, language string) llm.Result
}

// ReviewAnalyzer extracts structured feedback from a review text
type ReviewAnalyzer interface {
	Analyze(ctx context.Context, text string) llm.Parsed[domain.ReviewAnalysis]
}

// VideoAnalyzer extracts structured feedback about a game from a transcript
type VideoAnalyzer interface {
	Analyze(ctx context.Context, transcript, gameName string) llm.Parsed[domain.VideoAnalysis]
}

// TranslationStep translates pending non-english reviews
type TranslationStep struct {
	Translator Translator
}

// Name of the step
func (s TranslationStep) Name() string { return "translate" }

// Label of the done outcome
func (s TranslationStep) Label() string { return "translated" }

// Pending returns translation tasks for the oldest pending reviews
func (s TranslationStep) Pending(ctx context.Context, sess Session, limit int) ([]Task, error) {
	reviews, err := sess.Reviews.PendingTranslations(ctx, limit)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(reviews))
	for _, r := range reviews {
		tasks = append(tasks, Task{Key: reviewKey(r.RecommendationID), Run: func(ctx context.Context, sess Session) Outcome {
			return s.translate(ctx, sess.Reviews, r)
		}})
	}
	return tasks, nil
}

func (s TranslationStep) translate(ctx context.Context, store ReviewStore, r domain.Review) Outcome {
	res := s.Translator.Translate(ctx, r.OriginalText, r.OriginalLanguage)
	id := r.RecommendationID
	switch res.Kind {
	case llm.ResultSuccess:
		return written("translate", reviewKey(id), OutcomeDone, store.SaveTranslation(ctx, id, res.Text, res.Model))
	case llm.ResultRefusal:
		lgr.Printf("[WARN] translation of review %d refused: %s", id, res.Refusal)
		return written("translate", reviewKey(id), OutcomeSkipped,
			store.MarkTranslation(ctx, id, domain.TranslationSkipped, res.Diagnostic()))
	default:
		lgr.Printf("[WARN] translation of review %d failed: %s", id, res.Diagnostic())
		return failed("translate", reviewKey(id), store.MarkTranslation(ctx, id, domain.TranslationFailed, res.Diagnostic()))
	}
}

// ReviewAnalysisStep analyzes reviews with displayable text
type ReviewAnalysisStep struct {
	Analyzer ReviewAnalyzer
}

// Name of the step
func (s ReviewAnalysisStep) Name() string { return "analyze reviews" }

// Label of the done outcome
func (s ReviewAnalysisStep) Label() string { return "analyzed" }

// Pending returns analysis tasks for the oldest reviews waiting for analysis
func (s ReviewAnalysisStep) Pending(ctx context.Context, sess Session, limit int) ([]Task, error) {
	reviews, err := sess.Reviews.PendingAnalyses(ctx, limit)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(reviews))
	for _, r := range reviews {
		tasks = append(tasks, Task{Key: reviewKey(r.RecommendationID), Run: func(ctx context.Context, sess Session) Outcome {
			return s.analyze(ctx, sess.Reviews, r)
		}})
	}
	return tasks, nil
}

func (s ReviewAnalysisStep) analyze(ctx context.Context, store ReviewStore, r domain.Review) Outcome {
	res := s.Analyzer.Analyze(ctx, r.DisplayText())
	id := r.RecommendationID
	switch {
	case res.Kind == llm.ResultSuccess && res.Value != nil:
		return written("analyze", reviewKey(id), OutcomeDone, store.SaveAnalysis(ctx, id, res.Value))
	case res.Kind == llm.ResultRefusal:
		lgr.Printf("[WARN] analysis of review %d refused: %s", id, res.Refusal)
		return written("analyze", reviewKey(id), OutcomeSkipped,
			store.MarkAnalysis(ctx, id, domain.AnalysisSkipped, res.Diagnostic()))
	default:
		lgr.Printf("[WARN] analysis of review %d failed: %s", id, res.Diagnostic())
		return failed("analyze", reviewKey(id), store.MarkAnalysis(ctx, id, domain.AnalysisFailed, res.Diagnostic()))
	}
}

// VideoAnalysisStep analyzes fetched transcripts against the game mapped to the channel
type VideoAnalysisStep struct {
	Analyzer VideoAnalyzer
}

// Name of the step
func (s VideoAnalysisStep) Name() string { return "analyze videos" }

// Label of the done outcome
func (s VideoAnalysisStep) Label() string { return "analyzed" }

// Pending returns analysis tasks for videos with fetched transcripts
func (s VideoAnalysisStep) Pending(ctx context.Context, sess Session, limit int) ([]Task, error) {
	videos, err := sess.Videos.PendingAnalyses(ctx, limit)
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(videos))
	for _, v := range videos {
		tasks = append(tasks, Task{Key: "video:" + v.Video.VideoID, Run: func(ctx context.Context, sess Session) Outcome {
			return s.analyze(ctx, sess.Videos, v)
		}})
	}
	return tasks, nil
}

func (s VideoAnalysisStep) analyze(ctx context.Context, store VideoStore, task repository.VideoTask) Outcome {
	id := task.Video.VideoID
	key := "video:" + id
	if task.GameName == "" {
		return written("analyze", key, OutcomeSkipped,
			store.MarkAnalysis(ctx, id, domain.AnalysisSkipped, "channel is not mapped to a game"))
	}

	res := s.Analyzer.Analyze(ctx, task.Transcript, task.GameName)
	switch {
	case res.Kind == llm.ResultSuccess && res.Value != nil:
		outcome := OutcomeDone
		if !res.Value.IsRelevant {
			outcome = OutcomeIrrelevant
		}
		return written("analyze", key, outcome, store.SaveAnalysis(ctx, id, res.Value))
	case res.Kind == llm.ResultRefusal:
		lgr.Printf("[WARN] analysis of video %s refused: %s", id, res.Refusal)
		return written("analyze", key, OutcomeSkipped, store.MarkAnalysis(ctx, id, domain.AnalysisSkipped, res.Diagnostic()))
	default:
		lgr.Printf("[WARN] analysis of video %s failed: %s", id, res.Diagnostic())
		return failed("analyze", key, store.MarkAnalysis(ctx, id, domain.AnalysisFailed, res.Diagnostic()))
	}
}

// written returns outcome if the status write succeeded. An item finalized meanwhile by
// another worker is skipped, any other write error fails the task and leaves the item pending.
func written(step, key string, outcome Outcome, err error) Outcome {
	if err == nil {
		return outcome
	}
	if errors.Is(err, repository.ErrNotPending) {
		lgr.Printf("[DEBUG] %s %s: already finalized", step, key)
		return OutcomeSkipped
	}
	lgr.Printf("[WARN] %s %s: can't store result: %v", step, key, err)
	return OutcomeFailed
}

// failed logs a failing status write, the task is failed either way
func failed(step, key string, err error) Outcome {
	if err != nil && !errors.Is(err, repository.ErrNotPending) {
		lgr.Printf("[WARN] %s %s: can't mark failed: %v", step, key, err)
	}
	return OutcomeFailed
}

func reviewKey(id int64) string { return "review:" + strconv.FormatInt(id, 10) }
