package constants

// Reason codes returned by service operations. The UI resolves these through
// its localization layer; the backend never emits translated text.
const (
	ReasonForbidden     = "forbidden"
	ReasonUnauthorized  = "unauthorized"
	ReasonNotFound      = "not_found"
	ReasonMuted         = "user_muted"
	ReasonBlocked       = "account_blocked"
	ReasonEmailExists   = "email_exists"
	ReasonUsernameTaken = "username_taken"
	ReasonInvalidLogin  = "invalid_login"
	ReasonStoreFailure  = "store_failure"

	ReasonTitleRequired    = "title_required"
	ReasonContentRequired  = "content_required"
	ReasonCategoryInvalid  = "category_invalid"
	ReasonCityRequired     = "city_required"
	ReasonAreaRequired     = "area_required"
	ReasonStepsRequired    = "steps_required"
	ReasonReasonRequired   = "reason_required"
	ReasonUsernameRequired = "username_required"
	ReasonEmailRequired    = "email_required"
	ReasonPasswordLength   = "password_length_error"
	ReasonPasswordMismatch = "error_passwords_no_match"
	ReasonOwnPostReport    = "cannot_report_own_post"
	ReasonDurationInvalid  = "duration_invalid"

	ReasonCurrentPasswordIncorrect = "current_password_incorrect"
)

// Warning sent to reporters when an admin removes a post they reported.
// Codes, not prose: the client localizes.
const (
	WarnReportedPostDeletedTitle   = "report_deleted_notification_title"
	WarnReportedPostDeletedMessage = "report_deleted_notification_message"
)

const (
	APIStatusOk    = "ok"
	APIStatusError = "error"
)
