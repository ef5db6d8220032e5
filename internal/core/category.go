package core

// Category identifies one of the 21 fixed triage categories.
type Category string

// Group is the top-level bucket a category belongs to.
type Group string

// Groups, in declaration order. The order is load-bearing: resolved category
// lists are sorted by it.
const (
	GroupRecruitment   Group = "recruitment"
	GroupBusiness      Group = "business"
	GroupCommunication Group = "communication"
	GroupUndesirable   Group = "undesirable"
	GroupOther         Group = "other"
)

// The 21 categories. Declaration order is canonical: the classifier breaks
// score ties by picking the earlier category.
const (
	CategoryCVUnsolicited        Category = "cv_unsolicited"
	CategoryCVResponse           Category = "cv_response"
	CategoryInterview            Category = "interview"
	CategoryCandidateFollowup    Category = "candidate_followup"
	CategoryReferenceCheck       Category = "reference_check"
	CategoryPlatformNotification Category = "platform_notification"
	CategoryInvoice              Category = "invoice"
	CategoryQuote                Category = "quote"
	CategoryContract             Category = "contract"
	CategoryPartnership          Category = "partnership"
	CategoryVendor               Category = "vendor"
	CategoryInternalTeam         Category = "internal_team"
	CategoryMeeting              Category = "meeting"
	CategoryNewsletter           Category = "newsletter"
	CategoryNotification         Category = "notification"
	CategorySpam                 Category = "spam"
	CategoryPhishing             Category = "phishing"
	CategoryAdvertising          Category = "advertising"
	CategoryPersonal             Category = "personal"
	CategoryUnclassified         Category = "unclassified"
	CategoryDoubtful             Category = "doubtful"
)

// allCategories fixes the canonical declaration order.
var allCategories = []Category{
	CategoryCVUnsolicited,
	CategoryCVResponse,
	CategoryInterview,
	CategoryCandidateFollowup,
	CategoryReferenceCheck,
	CategoryPlatformNotification,
	CategoryInvoice,
	CategoryQuote,
	CategoryContract,
	CategoryPartnership,
	CategoryVendor,
	CategoryInternalTeam,
	CategoryMeeting,
	CategoryNewsletter,
	CategoryNotification,
	CategorySpam,
	CategoryPhishing,
	CategoryAdvertising,
	CategoryPersonal,
	CategoryUnclassified,
	CategoryDoubtful,
}

// allGroups fixes group declaration order for sorting resolved lists.
var allGroups = []Group{
	GroupRecruitment,
	GroupBusiness,
	GroupCommunication,
	GroupUndesirable,
	GroupOther,
}

// AllCategories returns the 21 categories in canonical declaration order.
// Callers must not mutate the returned slice.
func AllCategories() []Category {
	return allCategories
}

// AllGroups returns the 5 groups in declaration order.
func AllGroups() []Group {
	return allGroups
}

// CategoryMetadata is the effective description of a category after override
// resolution. Default rows are immutable; mutators operate on override rows.
type CategoryMetadata struct {
	ID               Category
	Label            string
	ShortLabel       string
	Group            Group
	Color            string
	Icon             string
	Order            int
	IsDefault        bool
	IsSystemCategory bool
	Hidden           bool
}

// UserCategoryConfig is a per-user override row keyed by (user, category).
// Nil fields fall back to the default metadata.
type UserCategoryConfig struct {
	UserID       string
	CategoryID   Category
	DisplayOrder *int
	CustomLabel  *string
	CustomColor  *string
	IsHidden     *bool
}

// CustomCategory is a user-created category. It has no default row and is
// appended to the resolved list as-is.
type CustomCategory struct {
	ID         Category
	UserID     string
	Label      string
	ShortLabel string
	Group      Group
	Color      string
	Icon       string
	Order      int
}

// defaultMetadata maps every category to its immutable defaults. Order values
// are per group.
var defaultMetadata = map[Category]CategoryMetadata{
	CategoryCVUnsolicited:        {ID: CategoryCVUnsolicited, Label: "Unsolicited application", ShortLabel: "CV spontaneous", Group: GroupRecruitment, Color: "#2563eb", Icon: "file-user", Order: 1, IsDefault: true},
	CategoryCVResponse:           {ID: CategoryCVResponse, Label: "Application to posting", ShortLabel: "CV response", Group: GroupRecruitment, Color: "#3b82f6", Icon: "file-check", Order: 2, IsDefault: true},
	CategoryInterview:            {ID: CategoryInterview, Label: "Interview", ShortLabel: "Interview", Group: GroupRecruitment, Color: "#0ea5e9", Icon: "calendar-clock", Order: 3, IsDefault: true},
	CategoryCandidateFollowup:    {ID: CategoryCandidateFollowup, Label: "Candidate follow-up", ShortLabel: "Follow-up", Group: GroupRecruitment, Color: "#06b6d4", Icon: "message-circle", Order: 4, IsDefault: true},
	CategoryReferenceCheck:       {ID: CategoryReferenceCheck, Label: "Reference check", ShortLabel: "References", Group: GroupRecruitment, Color: "#14b8a6", Icon: "shield-check", Order: 5, IsDefault: true},
	CategoryPlatformNotification: {ID: CategoryPlatformNotification, Label: "Hiring platform", ShortLabel: "Platform", Group: GroupRecruitment, Color: "#6366f1", Icon: "bell", Order: 6, IsDefault: true},
	CategoryInvoice:              {ID: CategoryInvoice, Label: "Invoice", ShortLabel: "Invoice", Group: GroupBusiness, Color: "#16a34a", Icon: "receipt", Order: 1, IsDefault: true},
	CategoryQuote:                {ID: CategoryQuote, Label: "Quote", ShortLabel: "Quote", Group: GroupBusiness, Color: "#22c55e", Icon: "file-text", Order: 2, IsDefault: true},
	CategoryContract:             {ID: CategoryContract, Label: "Contract", ShortLabel: "Contract", Group: GroupBusiness, Color: "#84cc16", Icon: "file-signature", Order: 3, IsDefault: true},
	CategoryPartnership:          {ID: CategoryPartnership, Label: "Partnership", ShortLabel: "Partner", Group: GroupBusiness, Color: "#65a30d", Icon: "handshake", Order: 4, IsDefault: true},
	CategoryVendor:               {ID: CategoryVendor, Label: "Vendor", ShortLabel: "Vendor", Group: GroupBusiness, Color: "#a3e635", Icon: "building", Order: 5, IsDefault: true},
	CategoryInternalTeam:         {ID: CategoryInternalTeam, Label: "Internal team", ShortLabel: "Internal", Group: GroupCommunication, Color: "#f59e0b", Icon: "users", Order: 1, IsDefault: true},
	CategoryMeeting:              {ID: CategoryMeeting, Label: "Meeting", ShortLabel: "Meeting", Group: GroupCommunication, Color: "#f97316", Icon: "calendar", Order: 2, IsDefault: true},
	CategoryNewsletter:           {ID: CategoryNewsletter, Label: "Newsletter", ShortLabel: "News", Group: GroupCommunication, Color: "#fb923c", Icon: "newspaper", Order: 3, IsDefault: true},
	CategoryNotification:         {ID: CategoryNotification, Label: "Notification", ShortLabel: "Notif", Group: GroupCommunication, Color: "#fbbf24", Icon: "bell-ring", Order: 4, IsDefault: true},
	CategorySpam:                 {ID: CategorySpam, Label: "Spam", ShortLabel: "Spam", Group: GroupUndesirable, Color: "#dc2626", Icon: "trash", Order: 1, IsDefault: true},
	CategoryPhishing:             {ID: CategoryPhishing, Label: "Phishing", ShortLabel: "Phishing", Group: GroupUndesirable, Color: "#b91c1c", Icon: "alert-triangle", Order: 2, IsDefault: true},
	CategoryAdvertising:          {ID: CategoryAdvertising, Label: "Advertising", ShortLabel: "Ads", Group: GroupUndesirable, Color: "#ef4444", Icon: "megaphone", Order: 3, IsDefault: true},
	CategoryPersonal:             {ID: CategoryPersonal, Label: "Personal", ShortLabel: "Personal", Group: GroupOther, Color: "#8b5cf6", Icon: "heart", Order: 1, IsDefault: true},
	CategoryUnclassified:         {ID: CategoryUnclassified, Label: "Unclassified", ShortLabel: "None", Group: GroupOther, Color: "#6b7280", Icon: "help-circle", Order: 2, IsDefault: true, IsSystemCategory: true},
	CategoryDoubtful:             {ID: CategoryDoubtful, Label: "Doubtful", ShortLabel: "Doubtful", Group: GroupOther, Color: "#9ca3af", Icon: "circle-question", Order: 3, IsDefault: true, IsSystemCategory: true},
}

// GroupOf returns the group a category belongs to. Unknown ids (custom
// categories live outside the fixed table) report false.
func GroupOf(c Category) (Group, bool) {
	meta, ok := defaultMetadata[c]
	if !ok {
		return "", false
	}
	return meta.Group, true
}

// DefaultMetadata returns the immutable default row for a category.
func DefaultMetadata(c Category) (CategoryMetadata, bool) {
	meta, ok := defaultMetadata[c]
	return meta, ok
}

// IsSystemCategory reports whether a category always exists and is protected
// from deletion.
func IsSystemCategory(c Category) bool {
	return c == CategoryUnclassified || c == CategoryDoubtful
}

// groupRank returns the declaration index of a group, used for sorting.
func groupRank(g Group) int {
	for i, group := range allGroups {
		if group == g {
			return i
		}
	}
	return len(allGroups)
}
