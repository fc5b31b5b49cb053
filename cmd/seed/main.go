package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"samvad/internal/analysis"
	"samvad/internal/config"
	"samvad/internal/model"
	"samvad/internal/repository"
)

// Seeds the database with the four-speaker healthcare debate used by the demo
// frontend, running the real pipeline so the stored record is complete.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	repo := repository.NewAnalysisRepo(db)

	narratives := []model.Narrative{
		{
			Speaker:  "Sarah - Healthcare Worker",
			Text:     "I've worked in emergency rooms for 15 years. I've watched patients die because they couldn't afford insulin or delayed care due to cost. Universal healthcare is a moral imperative - every human being deserves medical treatment regardless of their bank account. The current system is fundamentally unjust. Wealthy countries like ours should guarantee healthcare as a basic human right. I've seen families bankrupted by medical bills. This destroys communities and tears apart the social fabric we all depend on.",
			Position: "Universal healthcare is a moral imperative",
		},
		{
			Speaker:  "Marcus - Small Business Owner",
			Text:     "I employ 45 people and I'm barely staying afloat. Government-run healthcare would crush small businesses like mine with massive tax increases. I've seen what happens when bureaucrats control industries - endless wait times, declining quality, stifled innovation. My employees depend on me for their livelihoods. Their families need the jobs I provide. We need market-based solutions that preserve economic freedom and protect the entrepreneurial spirit that built this country. Heavy-handed government mandates will destroy more lives than they save.",
			Position: "Market-based solutions preserve economic freedom",
		},
		{
			Speaker:  "Dr. Patel - Medical Researcher",
			Text:     "The data is overwhelming. Countries with universal healthcare have better health outcomes at lower costs per capita. Evidence-based policy should drive our decisions, not ideology. My research shows that preventive care reduces long-term costs dramatically. Public health statistics prove that accessible healthcare strengthens entire populations. We have an obligation to future generations to build systems based on scientific evidence, not political rhetoric. The research clearly demonstrates that investment in population health yields massive returns.",
			Position: "Evidence-based policy should drive decisions",
		},
		{
			Speaker:  "James - Factory Worker",
			Text:     "I work two jobs to support my kids. When the local hospital started accepting government insurance, wait times tripled and my daughter waited 8 hours in the ER with a broken arm. My community needs jobs first - without economic stability, nothing else matters. My father lost his job when regulations forced his factory to close. I've experienced firsthand how government interference destroys working-class communities. We need policies that protect workers and preserve the dignity of earning an honest living, not handouts that create dependence.",
			Position: "Economic stability comes first",
		},
	}

	taxonomy := analysis.DefaultTaxonomy()
	analyzer := analysis.NewAnalyzer(taxonomy)
	detector := analysis.NewAgreementDetector(taxonomy)
	reporter := analysis.NewReportBuilder()

	profiles, err := analyzer.Analyze(narratives)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	agreements := detector.Detect(profiles)
	result := model.AnalysisResult{
		Narratives: narratives,
		Profiles:   profiles,
		Agreements: agreements,
	}
	report := reporter.Render(result, detector.Recommend(agreements))

	record := &model.AnalysisRecord{
		NumSpeakers:   len(narratives),
		NumAgreements: len(agreements),
		SourceType:    model.SourceText,
		Narratives:    narratives,
		Result:        result,
		Report:        report,
	}

	id, err := repo.Save(ctx, record)
	if err != nil {
		log.Fatalf("Failed to save seed analysis: %v", err)
	}

	fmt.Printf("Seeded analysis %s (%d speakers, %d agreements)\n", id, record.NumSpeakers, record.NumAgreements)
}
