// Command dedupe removes duplicate quiz results, keeping only the most recent
// submission per (user, quiz) pair. Run it once after enabling the
// duplicate-prevention window to clean up historical double submissions.
package main

import (
	"github.com/rs/zerolog/log"

	"quizforge/config"
	"quizforge/database"
	"quizforge/internal/logger"
	"quizforge/internal/repository"
)

func main() {
	logger.Init()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	resultRepo := repository.NewResultRepository(db)
	removed, err := resultRepo.RemoveDuplicates()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to remove duplicate results")
	}

	if removed == 0 {
		log.Info().Msg("No duplicate results found")
		return
	}
	log.Info().Int64("removed", removed).Msg("Removed duplicate results")
}
