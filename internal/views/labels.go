package views

import (
	"fmt"

	"github.com/MarcoPoloResearchLab/boxxit/internal/model"
)

// AcceptedMemberCount counts members who have accepted their invitation.
func AcceptedMemberCount(basket model.Basket) int {
	accepted := 0
	for _, member := range basket.Members {
		if member.Status == model.MemberStatusAccepted {
			accepted++
		}
	}
	return accepted
}

// CardCount counts the cards filed under the basket.
func CardCount(currentState model.AppState, basketID string) int {
	count := 0
	for _, card := range currentState.Cards {
		if card.InBasket(basketID) {
			count++
		}
	}
	return count
}

// CreatorName resolves a basket's creator for display: "You" for the
// current user, the friend's name when known, "Someone" otherwise.
func CreatorName(currentState model.AppState, basket model.Basket) string {
	if basket.CreatorID == currentState.CurrentUser.ID {
		return "You"
	}
	for _, friend := range currentState.Friends {
		if friend.ID == basket.CreatorID {
			return friend.Name
		}
	}
	return "Someone"
}

// SharedBaskets returns the baskets the current user created that the given
// member belongs to. For the current user themselves it returns everything
// they created.
func SharedBaskets(currentState model.AppState, memberID string) []model.Basket {
	shared := make([]model.Basket, 0, len(currentState.Baskets))
	for _, basket := range currentState.Baskets {
		if basket.CreatorID != currentState.CurrentUser.ID {
			continue
		}
		if memberID == currentState.CurrentUser.ID {
			shared = append(shared, basket)
			continue
		}
		if _, found := basket.MemberOf(memberID); found {
			shared = append(shared, basket)
		}
	}
	return shared
}

// FriendStatusLabel renders the connection state shown under a member's
// name.
func FriendStatusLabel(user model.User, isCurrentUser bool) string {
	if isCurrentUser {
		return "Self"
	}
	switch user.Status {
	case model.FriendStatusFriend:
		return "Connected"
	case model.FriendStatusPendingSent:
		return "Invited to join"
	case model.FriendStatusPendingReceived:
		return "Invitation received"
	default:
		return "No connection"
	}
}

// ActivityLine renders one feed entry as a sentence, substituting "You"
// when the actor is the current user.
func ActivityLine(activity model.Activity, currentUserID string) string {
	actor := activity.UserName
	if activity.UserID == currentUserID {
		actor = "You"
	}

	var content string
	switch activity.Type {
	case model.ActivityCardAdded:
		content = fmt.Sprintf("added a card to %q", activity.TargetName)
	case model.ActivityBasketInvited:
		content = fmt.Sprintf("invited someone to %q", activity.TargetName)
	case model.ActivityBasketInvitationAccepted:
		content = fmt.Sprintf("joined %q", activity.TargetName)
	case model.ActivityBasketAdded:
		content = fmt.Sprintf("created %q", activity.TargetName)
	case model.ActivityBasketDeleted:
		content = "deleted a box"
	case model.ActivityScribbleAdded:
		content = fmt.Sprintf("messaged in %q", activity.TargetName)
	case model.ActivityFriendAdded:
		content = fmt.Sprintf("connected with %s", activity.TargetName)
	case model.ActivityFriendInvited:
		content = fmt.Sprintf("invited %s", activity.TargetName)
	case model.ActivityCardPinned:
		content = fmt.Sprintf("pinned a card in %q", activity.TargetName)
	default:
		content = fmt.Sprintf("did something in %q", activity.TargetName)
	}
	return actor + " " + content
}
