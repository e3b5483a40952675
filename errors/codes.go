package errors

const (
	// Generic codes
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeInvalidInput        ErrorCode = "INVALID_INPUT"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeInternalServer      ErrorCode = "INTERNAL_SERVER"
	CodeDatabaseError       ErrorCode = "DATABASE_ERROR"
	CodeTransactionError    ErrorCode = "TRANSACTION_ERROR"
	CodeEventPublishError   ErrorCode = "EVENT_PUBLISH_ERROR"
	CodeObjectMarshalError  ErrorCode = "OBJECT_MARSHAL_ERROR"
	CodeRedisOperationError ErrorCode = "REDIS_ERROR"

	// Engine codes
	CodeValidation          ErrorCode = "VALIDATION_ERROR"
	CodeInvalidScore        ErrorCode = "INVALID_SCORE"
	CodeDuplicateSubmission ErrorCode = "DUPLICATE_SUBMISSION"
	CodeChallengeNotActive  ErrorCode = "CHALLENGE_NOT_ACTIVE"
	CodeConcurrencyConflict ErrorCode = "CONCURRENCY_CONFLICT"
)
