package main

import (
	"context"
	"log"
	"time"

	"eduagent/internal/models"
	"eduagent/internal/repository"
	"eduagent/pkg/auth"
	"eduagent/pkg/config"
	"eduagent/pkg/logger"
	"eduagent/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	faqRepo := repository.NewFAQRepository(db, appLogger)
	examRepo := repository.NewExamRepository(db, appLogger)
	feeRepo := repository.NewFeeRepository(db, appLogger)
	staffRepo := repository.NewStaffRepository(db, appLogger)

	appLogger.Info("Starting database seeding")

	if err := seedFAQs(ctx, faqRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed FAQs", zap.Error(err))
	}
	if err := seedExams(ctx, examRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed exam schedule", zap.Error(err))
	}
	if err := seedFees(ctx, feeRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed fee structure", zap.Error(err))
	}
	if err := seedAdminUser(ctx, staffRepo, &cfg.Admin, appLogger); err != nil {
		appLogger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	appLogger.Info("Database seeding completed")
}

func seedFAQs(ctx context.Context, repo *repository.FAQRepository, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("FAQs already seeded, skipping", zap.Int64("count", count))
		return nil
	}

	now := time.Now()
	faqs := []*models.FAQ{
		{
			Category: "Attendance",
			Question: "What is the minimum attendance requirement?",
			Answer: "The minimum attendance requirement at MBIT, CVM University is 75%. " +
				"Students with attendance below 75% will not be permitted to appear in " +
				"the final examinations. Students between 65-74% may apply for condonation " +
				"with valid medical documents. Below 65% results in automatic detention.",
			Keywords: "attendance, minimum, requirement, percentage, 75, detained, condonation",
		},
		{
			Category: "Attendance",
			Question: "How can I apply for attendance condonation?",
			Answer: "Students at MBIT with attendance between 65-74% can apply for condonation. " +
				"Submit Form ATT-02 to the academic office with your medical certificate or " +
				"valid reason. Applications must be submitted at least 7 days before exams. " +
				"The condonation committee reviews each case individually.",
			Keywords: "condonation, leave, medical, attendance shortage, form, apply",
		},
		{
			Category: "Fees",
			Question: "What is the fee payment deadline?",
			Answer: "At MBIT, CVM University, semester fees must be paid within the first 30 days " +
				"of the semester start date. Late payments attract a fine of Rs. 100 per day " +
				"after the deadline. Students with unpaid fees will not receive hall tickets " +
				"for semester exams. Payment can be done online via the student portal or at " +
				"the accounts office.",
			Keywords: "fee, payment, deadline, semester, fine, late fee, hall ticket",
		},
		{
			Category: "Fees",
			Question: "Can I pay fees in installments?",
			Answer: "Yes, at MBIT fees can be paid in two installments upon approval. Submit an " +
				"installment request form to the Accounts Department with a valid reason. " +
				"First installment (60% of total) by the 30th day of semester start, " +
				"remaining 40% within 60 days.",
			Keywords: "installment, partial payment, fee payment, emi, split fee",
		},
		{
			Category: "Exam",
			Question: "How do I apply for re-evaluation of exam papers?",
			Answer: "At MBIT, CVM University you can apply for re-evaluation within 7 days of " +
				"the result declaration date. Collect Form RE-01 from the examination " +
				"department. Submit with a fee of Rs. 500 per subject. Results are typically " +
				"updated within 3-4 weeks. If marks improve, the fee is refunded.",
			Keywords: "re-evaluation, recheck, result, exam, marks, form, paper viewing",
		},
		{
			Category: "Exam",
			Question: "How do I get my hall ticket for the semester exam?",
			Answer: "Hall tickets at MBIT are issued 7-10 days before the exam start date. " +
				"Requirements: fees fully paid, attendance above 75%, no pending library dues. " +
				"Download from the student portal or collect from the exam section. " +
				"Hall ticket is mandatory for exam hall entry.",
			Keywords: "hall ticket, admit card, exam entry, exam section, download",
		},
		{
			Category: "Scholarship",
			Question: "What scholarships are available for students?",
			Answer: "Available scholarships at MBIT, CVM University:\n" +
				"1. Merit Scholarship: Top 10% of class - Rs. 10,000/year\n" +
				"2. Need-based Scholarship: EWS students - up to full fee waiver\n" +
				"3. Sports Scholarship: National/state athletes - Rs. 5,000/semester\n" +
				"4. Government Scholarships: SC/ST/OBC via Gujarat state portal\n" +
				"Contact the scholarship desk in Block C for application forms.",
			Keywords: "scholarship, merit, need-based, sports, sc, st, obc, financial aid",
		},
		{
			Category: "Admission",
			Question: "What documents are required for admission at MBIT?",
			Answer: "Required documents for admission at MBIT, CVM University:\n" +
				"1. 10th standard marksheet and passing certificate\n" +
				"2. 12th standard marksheet and passing certificate\n" +
				"3. Transfer Certificate (TC) from previous institution\n" +
				"4. Migration Certificate (if from another university)\n" +
				"5. 4 recent passport-size photographs\n" +
				"6. Aadhar Card photocopy\n" +
				"7. Caste certificate if applicable\n" +
				"8. Medical fitness certificate\n" +
				"All originals must be presented at verification.",
			Keywords: "admission, documents, required, certificate, marksheet, tc, aadhar",
		},
		{
			Category: "Library",
			Question: "How many books can I borrow from the MBIT library?",
			Answer: "MBIT library allows students to borrow up to 4 books for 14 days. " +
				"Books can be renewed once for 7 more days if not reserved by others. " +
				"Late return fine: Rs. 2 per day per book. " +
				"Reference books are for in-library use only. " +
				"Library hours: Monday to Saturday, 8:00 AM to 7:00 PM.",
			Keywords: "library, books, borrow, issue, return, fine, renew",
		},
		{
			Category: "General",
			Question: "How do I get a bonafide certificate from MBIT?",
			Answer: "To get a bonafide certificate at MBIT:\n" +
				"1. Visit the administrative office (9 AM - 4 PM, Mon-Fri)\n" +
				"2. Bring your MBIT college ID card\n" +
				"3. Fill the request form and state the purpose\n" +
				"Certificate issued within 2 working days. " +
				"Same-day express service available with prior approval.",
			Keywords: "bonafide, certificate, document, official, attestation",
		},
		{
			Category: "General",
			Question: "What are MBIT college working hours?",
			Answer: "MBIT, CVM University working hours:\n" +
				"- Classes: Monday to Saturday, 8:00 AM to 5:00 PM\n" +
				"- Administrative Office: Monday to Friday, 9:00 AM to 4:30 PM\n" +
				"- Library: Monday to Saturday, 8:00 AM to 7:00 PM\n" +
				"- Principal's Office: By appointment only\n" +
				"Closed on national holidays and semester breaks.",
			Keywords: "timing, hours, office hours, college time, working hours, schedule",
		},
	}

	for _, faq := range faqs {
		faq.ID = uuid.New()
		faq.CreatedAt = now
		if err := repo.Create(ctx, faq); err != nil {
			return err
		}
	}

	logger.Info("Seeded FAQs", zap.Int("count", len(faqs)))
	return nil
}

func seedExams(ctx context.Context, repo *repository.ExamRepository, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Exam schedule already seeded, skipping", zap.Int64("count", count))
		return nil
	}

	exams := []*models.ExamSchedule{
		{Subject: "Mathematics", ExamDate: "2025-03-10", ExamTime: "10:00 AM", Venue: "Hall A", Semester: 2},
		{Subject: "Physics", ExamDate: "2025-03-12", ExamTime: "10:00 AM", Venue: "Hall B", Semester: 2},
		{Subject: "Computer Science", ExamDate: "2025-03-14", ExamTime: "02:00 PM", Venue: "Lab 1", Semester: 2},
		{Subject: "English Communication", ExamDate: "2025-03-16", ExamTime: "10:00 AM", Venue: "Hall A", Semester: 2},
		{Subject: "Chemistry", ExamDate: "2025-03-18", ExamTime: "10:00 AM", Venue: "Hall C", Semester: 2},
		{Subject: "Engineering Drawing", ExamDate: "2025-03-20", ExamTime: "10:00 AM", Venue: "Drawing Hall", Semester: 2},
		{Subject: "Environmental Science", ExamDate: "2025-03-22", ExamTime: "10:00 AM", Venue: "Hall B", Semester: 2},
	}

	for _, exam := range exams {
		exam.ID = uuid.New()
		if err := repo.Create(ctx, exam); err != nil {
			return err
		}
	}

	logger.Info("Seeded exam schedule", zap.Int("count", len(exams)))
	return nil
}

func seedFees(ctx context.Context, repo *repository.FeeRepository, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Fee structure already seeded, skipping", zap.Int64("count", count))
		return nil
	}

	fees := []*models.Fee{
		{FeeType: "Tuition Fee", Amount: 45000.0, DueDate: "Within 30 days of semester start", Description: "Core academic fee for instruction"},
		{FeeType: "Library Fee", Amount: 500.0, DueDate: "At the time of admission", Description: "Annual library access and maintenance"},
		{FeeType: "Sports Fee", Amount: 300.0, DueDate: "At the time of admission", Description: "Access to sports facilities"},
		{FeeType: "Exam Fee", Amount: 800.0, DueDate: "Before each semester examination", Description: "Per-semester exam processing fee"},
		{FeeType: "Development Fee", Amount: 2000.0, DueDate: "At the time of admission", Description: "Infrastructure and development"},
		{FeeType: "Laboratory Fee", Amount: 1500.0, DueDate: "Per semester with exam fee", Description: "Lab consumables and equipment"},
		{FeeType: "Student Activity Fee", Amount: 200.0, DueDate: "At the time of admission", Description: "Cultural events and student clubs"},
	}

	for _, fee := range fees {
		fee.ID = uuid.New()
		if err := repo.Create(ctx, fee); err != nil {
			return err
		}
	}

	logger.Info("Seeded fee structure", zap.Int("count", len(fees)))
	return nil
}

func seedAdminUser(ctx context.Context, repo *repository.StaffRepository, adminCfg *config.AdminConfig, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Staff users already exist, skipping admin bootstrap", zap.Int64("count", count))
		return nil
	}

	hash, err := auth.HashPassword(adminCfg.Password)
	if err != nil {
		return err
	}

	user := &models.StaffUser{
		ID:        uuid.New(),
		Username:  adminCfg.Username,
		Password:  hash,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, user); err != nil {
		return err
	}

	logger.Info("Bootstrapped admin staff user", zap.String("username", adminCfg.Username))
	return nil
}
