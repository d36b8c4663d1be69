package storage

// Keys of all values kept in the store. They keep the names the web client
// used for its localStorage entries so exported data stays comparable.
const (
	KeyAIConfig          = "maternal-ai-config"
	KeyChatSessions      = "maternal-chat-sessions"
	KeyPregnancyInfo     = "maternal-pregnancy-info"
	KeyBabyRecords       = "maternal-baby-records"
	KeyFeedingRecords    = "maternal-feeding-records"
	KeyDiaperRecords     = "maternal-diaper-records"
	KeyVaccineRecords    = "maternal-vaccine-records"
	KeyUserID            = "maternal-user-id"
	KeyTrackingQueue     = "maternal-tracking-queue"
	KeyCompletedSections = "maternal-completed-sections"
	KeyLocale            = "maternal-locale"

	// One-time dialog flags
	KeyAPIKeyNoticeSeen   = "maternal-api-key-notice-seen"
	KeyTrackingNoticeSeen = "maternal-tracking-notice-seen"
)
