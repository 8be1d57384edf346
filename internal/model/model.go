package model

// FriendStatus tracks our side of the friend-request edge with another user.
// The zero value means the field does not apply (the current user).
type FriendStatus string

const (
	FriendStatusNone            FriendStatus = "none"
	FriendStatusPendingSent     FriendStatus = "pending_sent"
	FriendStatusPendingReceived FriendStatus = "pending_received"
	FriendStatusFriend          FriendStatus = "friend"
)

// Role is a member's capability level inside one basket.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleContributor Role = "contributor"
)

// MemberStatus tracks acceptance of a basket invitation, independent of
// friend status.
type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusAccepted MemberStatus = "accepted"
)

// ViewMode controls card rendering density for one basket.
type ViewMode string

const (
	ViewModeMini ViewMode = "mini"
	ViewModeMax  ViewMode = "max"
)

// AttachmentType classifies a card attachment.
type AttachmentType string

const (
	AttachmentTypeImage AttachmentType = "image"
	AttachmentTypeVideo AttachmentType = "video"
	AttachmentTypeFile  AttachmentType = "file"
	AttachmentTypeLink  AttachmentType = "link"
)

// ActivityType enumerates every audit-log entry kind. The store only emits a
// subset of these; the rest remain representable for seeded entries.
type ActivityType string

const (
	ActivityCardAdded                ActivityType = "card_added"
	ActivityCardMoved                ActivityType = "card_moved"
	ActivityCardPinned               ActivityType = "card_pinned"
	ActivityCardUnpinned             ActivityType = "card_unpinned"
	ActivityBasketAdded              ActivityType = "basket_added"
	ActivityBasketInvited            ActivityType = "basket_invited"
	ActivityBasketInvitationAccepted ActivityType = "basket_invitation_accepted"
	ActivityBasketArchived           ActivityType = "basket_archived"
	ActivityBasketDeleted            ActivityType = "basket_deleted"
	ActivityMemberAdded              ActivityType = "member_added"
	ActivityMemberRemoved            ActivityType = "member_removed"
	ActivityScribbleAdded            ActivityType = "scribble_added"
	ActivityFriendAdded              ActivityType = "friend_added"
	ActivityFriendInvited            ActivityType = "friend_invited"
	ActivityFriendInvitationReceived ActivityType = "friend_invitation_received"
	ActivityFriendInvitationDeclined ActivityType = "friend_invitation_declined"
)

// User is a person known to the application. Status is only meaningful for
// users other than the current one.
type User struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Email  string       `json:"email"`
	Avatar string       `json:"avatar"`
	Status FriendStatus `json:"status,omitempty"`
}

// Member is the edge between a user and one basket.
type Member struct {
	UserID   string       `json:"user_id"`
	Role     Role         `json:"role"`
	JoinedAt int64        `json:"joined_at"`
	Status   MemberStatus `json:"status"`
}

// Scribble is an immutable chat or comment message. Scribbles are only ever
// appended, never edited or reordered.
type Scribble struct {
	ID         string `json:"id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

// Attachment is a typed reference carried by a card. Immutable once created
// except by deletion from the card's attachment list.
type Attachment struct {
	ID   string         `json:"id"`
	Type AttachmentType `json:"type"`
	URL  string         `json:"url"`
	Name string         `json:"name,omitempty"`
}

// Card is a note that can appear in one or more baskets. BasketIDs are
// foreign keys, not ownership; the card owns its attachments and its own
// scribble thread, which is distinct from any basket's chat.
type Card struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
	Scribbles   []Scribble   `json:"scribbles"`
	CreatorID   string       `json:"creator_id"`
	CreatorName string       `json:"creator_name"`
	BasketIDs   []string     `json:"basket_ids"`
	Timestamp   int64        `json:"timestamp"`
	Order       int          `json:"order,omitempty"`
	IsPinned    bool         `json:"is_pinned,omitempty"`
}

// Basket is a named collection of cards with its own membership and chat.
// Members and scribbles are owned directly, not referenced.
type Basket struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Color          string     `json:"color"`
	Image          string     `json:"image,omitempty"`
	Members        []Member   `json:"members"`
	Scribbles      []Scribble `json:"scribbles"`
	IsPinned       bool       `json:"is_pinned"`
	IsArchived     bool       `json:"is_archived"`
	CreatorID      string     `json:"creator_id"`
	GroupID        string     `json:"group_id,omitempty"`
	CreatedAt      int64      `json:"created_at"`
	LastViewedAt   int64      `json:"last_viewed_at"`
	LastReadChatAt int64      `json:"last_read_chat_at,omitempty"`
	ViewMode       ViewMode   `json:"view_mode"`
}

// BasketGroup is a named grouping label for baskets.
type BasketGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Activity is an append-only audit-log entry. Entries are never updated or
// deleted, even when their target is.
type Activity struct {
	ID                  string       `json:"id"`
	Type                ActivityType `json:"type"`
	UserID              string       `json:"user_id"`
	UserName            string       `json:"user_name"`
	TargetID            string       `json:"target_id"`
	TargetName          string       `json:"target_name"`
	SecondaryTargetID   string       `json:"secondary_target_id,omitempty"`
	SecondaryTargetName string       `json:"secondary_target_name,omitempty"`
	Details             string       `json:"details,omitempty"`
	Timestamp           int64        `json:"timestamp"`
}

// FeedSettings are per-user toggles for the activity feed.
type FeedSettings struct {
	ShowCards     bool `json:"show_cards"`
	ShowMembers   bool `json:"show_members"`
	ShowScribbles bool `json:"show_scribbles"`
	ShowBaskets   bool `json:"show_baskets"`
}

// AppState is the whole application state: flat, insertion-ordered slices
// plus the distinguished current user. All timestamps are Unix milliseconds.
type AppState struct {
	CurrentUser  User          `json:"current_user"`
	Baskets      []Basket      `json:"baskets"`
	Cards        []Card        `json:"cards"`
	Groups       []BasketGroup `json:"groups"`
	Activities   []Activity    `json:"activities"`
	Friends      []User        `json:"friends"`
	SeenCardIDs  []string      `json:"seen_card_ids"`
	FeedSettings FeedSettings  `json:"feed_settings"`
}

// MemberOf returns the membership edge for the given user, if any.
func (b Basket) MemberOf(userID string) (Member, bool) {
	for _, member := range b.Members {
		if member.UserID == userID {
			return member, true
		}
	}
	return Member{}, false
}

// InBasket reports whether the card is filed under the given basket.
func (c Card) InBasket(basketID string) bool {
	for _, id := range c.BasketIDs {
		if id == basketID {
			return true
		}
	}
	return false
}

// CompareCardsForDisplay orders cards the way every basket view renders
// them: pinned cards first, then Order ascending, then Timestamp ascending.
// It returns a negative value when a sorts before b.
func CompareCardsForDisplay(a, b Card) int {
	if a.IsPinned != b.IsPinned {
		if a.IsPinned {
			return -1
		}
		return 1
	}
	if a.Order != b.Order {
		return a.Order - b.Order
	}
	switch {
	case a.Timestamp < b.Timestamp:
		return -1
	case a.Timestamp > b.Timestamp:
		return 1
	}
	return 0
}
