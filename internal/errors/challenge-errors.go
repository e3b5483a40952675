package errors

import (
	"fmt"

	apperrors "github.com/scottwarrens/challengeboard/errors"
)

func ValidationError(message string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeValidation, message)
}

func ChallengeNotFoundError(challengeID string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeNotFound,
		fmt.Sprintf("challenge not found: %s", challengeID))
}

func ChallengeNotActiveError(challengeID string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeChallengeNotActive,
		fmt.Sprintf("challenge is not active: %s", challengeID))
}

func DuplicateSubmissionError(challengeID, playerID string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeDuplicateSubmission,
		fmt.Sprintf("player %s already submitted to challenge %s", playerID, challengeID))
}

func InvalidScoreError(playerID string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidScore,
		fmt.Sprintf("score for player %s must be a finite number", playerID))
}

func UnknownPlayerError(playerID string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeValidation,
		fmt.Sprintf("player is not on the roster: %s", playerID))
}

func HostSubmissionError(challengeID, playerID string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeValidation,
		fmt.Sprintf("host %s may not submit to their own challenge %s", playerID, challengeID))
}

func FinalizeConflictError(challengeID string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeConcurrencyConflict,
		fmt.Sprintf("challenge %s was finalized concurrently", challengeID))
}
