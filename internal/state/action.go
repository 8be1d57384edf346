package state

import "github.com/MarcoPoloResearchLab/boxxit/internal/model"

// Action is the closed set of state transitions. Each variant carries
// exactly the payload its transition consumes; anything outside the set,
// including a nil action, is applied as a silent no-op.
type Action interface {
	isAction()
	// Name is the snake_case action label used for logging.
	Name() string
}

// BasketUpdate is a shallow merge into one basket. Nil fields are left
// untouched; a non-nil Members slice replaces the membership list wholesale.
type BasketUpdate struct {
	Title       *string
	Description *string
	Color       *string
	Image       *string
	Members     []model.Member
	IsPinned    *bool
	IsArchived  *bool
	GroupID     *string
	ViewMode    *model.ViewMode
}

// CardUpdate is a shallow merge into one card. Nil fields are left
// untouched; non-nil slices replace their counterparts wholesale.
type CardUpdate struct {
	Text        *string
	Attachments []model.Attachment
	BasketIDs   []string
	IsPinned    *bool
	Order       *int
}

// ViewBasket stamps the basket's last-viewed time.
type ViewBasket struct {
	BasketID string
}

// AddBasket prepends a basket. The creator edge is normalized to the
// current user as an accepted admin and every other submitted member is
// forced to pending; submitted chat transcripts are discarded.
type AddBasket struct {
	Basket model.Basket
}

// UpdateBasket shallow-merges updates into one basket.
type UpdateBasket struct {
	BasketID string
	Updates  BasketUpdate
}

// AcceptBasketInvitation flips the current user's pending membership to
// accepted.
type AcceptBasketInvitation struct {
	BasketID string
}

// DeclineBasketInvitation removes the basket entirely.
type DeclineBasketInvitation struct {
	BasketID string
}

// RemoveMemberFromBasket drops one membership edge by user id.
type RemoveMemberFromBasket struct {
	BasketID string
	UserID   string
}

// AddBasketScribble appends a message to the basket's chat.
type AddBasketScribble struct {
	BasketID string
	Scribble model.Scribble
}

// MarkBasketChatRead stamps the basket's last-read-chat time.
type MarkBasketChatRead struct {
	BasketID string
}

// AddCard appends a card, assigning it the next display rank within its
// first listed basket.
type AddCard struct {
	Card model.Card
}

// UpdateCard shallow-merges updates into one card.
type UpdateCard struct {
	CardID  string
	Updates CardUpdate
}

// DeleteCard removes a card by id.
type DeleteCard struct {
	CardID string
}

// ToggleCardPin flips a card's pinned flag.
type ToggleCardPin struct {
	CardID string
}

// ReorderCards moves the source card to the target card's position within
// one basket's display order and renumbers the whole sequence.
type ReorderCards struct {
	BasketID     string
	SourceCardID string
	TargetCardID string
}

// InviteFriend marks a friend request as sent.
type InviteFriend struct {
	UserID string
}

// AcceptFriend accepts a received friend request.
type AcceptFriend struct {
	UserID string
}

// DeclineFriend rejects a received friend request.
type DeclineFriend struct {
	UserID string
}

// CancelInvitation withdraws a sent friend request.
type CancelInvitation struct {
	UserID string
}

// TogglePin flips a basket's pinned flag.
type TogglePin struct {
	BasketID string
}

// ToggleArchive flips a basket's archived flag.
type ToggleArchive struct {
	BasketID string
}

// DeleteBasket removes a basket by id. Cards and activities referencing it
// keep their stale ids.
type DeleteBasket struct {
	BasketID string
}

// AddCardScribble appends a comment to the card's own scribble thread.
type AddCardScribble struct {
	CardID   string
	Scribble model.Scribble
}

func (ViewBasket) isAction()              {}
func (AddBasket) isAction()               {}
func (UpdateBasket) isAction()            {}
func (AcceptBasketInvitation) isAction()  {}
func (DeclineBasketInvitation) isAction() {}
func (RemoveMemberFromBasket) isAction()  {}
func (AddBasketScribble) isAction()       {}
func (MarkBasketChatRead) isAction()      {}
func (AddCard) isAction()                 {}
func (UpdateCard) isAction()              {}
func (DeleteCard) isAction()              {}
func (ToggleCardPin) isAction()           {}
func (ReorderCards) isAction()            {}
func (InviteFriend) isAction()            {}
func (AcceptFriend) isAction()            {}
func (DeclineFriend) isAction()           {}
func (CancelInvitation) isAction()        {}
func (TogglePin) isAction()               {}
func (ToggleArchive) isAction()           {}
func (DeleteBasket) isAction()            {}
func (AddCardScribble) isAction()         {}

func (ViewBasket) Name() string              { return "view_basket" }
func (AddBasket) Name() string               { return "add_basket" }
func (UpdateBasket) Name() string            { return "update_basket" }
func (AcceptBasketInvitation) Name() string  { return "accept_basket_invitation" }
func (DeclineBasketInvitation) Name() string { return "decline_basket_invitation" }
func (RemoveMemberFromBasket) Name() string  { return "remove_member_from_basket" }
func (AddBasketScribble) Name() string       { return "add_basket_scribble" }
func (MarkBasketChatRead) Name() string      { return "mark_basket_chat_read" }
func (AddCard) Name() string                 { return "add_card" }
func (UpdateCard) Name() string              { return "update_card" }
func (DeleteCard) Name() string              { return "delete_card" }
func (ToggleCardPin) Name() string           { return "toggle_card_pin" }
func (ReorderCards) Name() string            { return "reorder_cards" }
func (InviteFriend) Name() string            { return "invite_friend" }
func (AcceptFriend) Name() string            { return "accept_friend" }
func (DeclineFriend) Name() string           { return "decline_friend" }
func (CancelInvitation) Name() string        { return "cancel_invitation" }
func (TogglePin) Name() string               { return "toggle_pin" }
func (ToggleArchive) Name() string           { return "toggle_archive" }
func (DeleteBasket) Name() string            { return "delete_basket" }
func (AddCardScribble) Name() string         { return "add_card_scribble" }
