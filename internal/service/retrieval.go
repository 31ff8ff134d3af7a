package service

import (
	"context"

	"eduagent/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Narrow store interfaces so the aggregator can be tested with fakes and the
// persistence technology stays swappable.
type (
	FAQSearcher interface {
		Search(ctx context.Context, text, category string) ([]*models.FAQ, error)
	}

	ExamLister interface {
		ListAll(ctx context.Context) ([]*models.ExamSchedule, error)
	}

	FeeLister interface {
		ListAll(ctx context.Context) ([]*models.Fee, error)
	}

	PassageSearcher interface {
		Search(ctx context.Context, text string, topK int) ([]Passage, error)
	}
)

// Context-schema entries: storage field names are renamed here, at the
// aggregator boundary (exam_date -> Date, fee_type -> Type).
type (
	FAQEntry struct {
		Category string
		Question string
		Answer   string
	}

	ExamEntry struct {
		Subject  string
		Date     string
		Time     string
		Venue    string
		Semester int
	}

	FeeEntry struct {
		Type        string
		Amount      float64
		DueDate     string
		Description string
	}

	Passage struct {
		Text       string
		SourceFile string
	}
)

// RetrievedContext is rebuilt per query and never mutated afterwards.
type RetrievedContext struct {
	Category Category
	FAQs     []FAQEntry
	Exams    []ExamEntry
	Fees     []FeeEntry
	Passages []Passage
}

// Retriever assembles the context bundle for a classified query. Its four
// sub-fetches are independent: a failure in any one degrades that field to
// empty, logged, never surfaced. Partial context beats no answer.
type Retriever struct {
	faqs     FAQSearcher
	exams    ExamLister
	fees     FeeLister
	passages PassageSearcher
	topK     int
	logger   *zap.Logger
}

func NewRetriever(faqs FAQSearcher, exams ExamLister, fees FeeLister, passages PassageSearcher, topK int, logger *zap.Logger) *Retriever {
	return &Retriever{
		faqs:     faqs,
		exams:    exams,
		fees:     fees,
		passages: passages,
		topK:     topK,
		logger:   logger,
	}
}

// Retrieve always searches FAQs and document passages; exam and fee rows are
// fetched only when the classification calls for them. The passage search
// runs regardless of category: the lexical classifier is not authoritative
// and the semantic index is an independent signal.
func (r *Retriever) Retrieve(ctx context.Context, question string, classification Classification) RetrievedContext {
	retrieved := RetrievedContext{Category: classification.Category}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		faqs, err := r.faqs.Search(gctx, question, string(classification.Category))
		if err != nil {
			r.logger.Warn("FAQ search failed", zap.Error(err))
			return nil
		}
		for _, faq := range faqs {
			retrieved.FAQs = append(retrieved.FAQs, FAQEntry{
				Category: faq.Category,
				Question: faq.Question,
				Answer:   faq.Answer,
			})
		}
		return nil
	})

	if classification.Category == CategoryExam {
		g.Go(func() error {
			exams, err := r.exams.ListAll(gctx)
			if err != nil {
				r.logger.Warn("Exam schedule fetch failed", zap.Error(err))
				return nil
			}
			for _, exam := range exams {
				retrieved.Exams = append(retrieved.Exams, ExamEntry{
					Subject:  exam.Subject,
					Date:     exam.ExamDate,
					Time:     exam.ExamTime,
					Venue:    exam.Venue,
					Semester: exam.Semester,
				})
			}
			return nil
		})
	}

	if classification.Category == CategoryFees {
		g.Go(func() error {
			fees, err := r.fees.ListAll(gctx)
			if err != nil {
				r.logger.Warn("Fee structure fetch failed", zap.Error(err))
				return nil
			}
			for _, fee := range fees {
				retrieved.Fees = append(retrieved.Fees, FeeEntry{
					Type:        fee.FeeType,
					Amount:      fee.Amount,
					DueDate:     fee.DueDate,
					Description: fee.Description,
				})
			}
			return nil
		})
	}

	g.Go(func() error {
		passages, err := r.passages.Search(gctx, question, r.topK)
		if err != nil {
			r.logger.Warn("Passage search failed", zap.Error(err))
			return nil
		}
		retrieved.Passages = passages
		return nil
	})

	_ = g.Wait() // sub-fetches never return errors, they degrade

	r.logger.Info("Context retrieved",
		zap.String("category", string(classification.Category)),
		zap.Int("faqs", len(retrieved.FAQs)),
		zap.Int("exams", len(retrieved.Exams)),
		zap.Int("fees", len(retrieved.Fees)),
		zap.Int("passages", len(retrieved.Passages)),
	)

	return retrieved
}
