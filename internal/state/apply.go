package state

import (
	"sort"

	"github.com/MarcoPoloResearchLab/boxxit/internal/model"
)

const (
	fallbackTargetID   = "none"
	fallbackTargetName = "Box"
)

// Stamp supplies the ambient inputs a transition may consume: the current
// time in Unix milliseconds and a generator for fresh identifiers. Apply
// itself stays deterministic given a fixed Stamp.
type Stamp struct {
	Now   int64
	NewID func() string
}

// Apply computes the successor state for one action. The input state is
// never mutated. Nil and unrecognized actions, and actions whose target id
// matches nothing, return the state unchanged.
func Apply(currentState model.AppState, action Action, stamp Stamp) model.AppState {
	switch typedAction := action.(type) {
	case ViewBasket:
		return applyViewBasket(currentState, typedAction, stamp)
	case AddBasket:
		return applyAddBasket(currentState, typedAction, stamp)
	case UpdateBasket:
		return applyUpdateBasket(currentState, typedAction)
	case AcceptBasketInvitation:
		return applyAcceptBasketInvitation(currentState, typedAction, stamp)
	case DeclineBasketInvitation:
		return applyDeclineBasketInvitation(currentState, typedAction)
	case RemoveMemberFromBasket:
		return applyRemoveMemberFromBasket(currentState, typedAction)
	case AddBasketScribble:
		return applyAddBasketScribble(currentState, typedAction)
	case MarkBasketChatRead:
		return applyMarkBasketChatRead(currentState, typedAction, stamp)
	case AddCard:
		return applyAddCard(currentState, typedAction, stamp)
	case UpdateCard:
		return applyUpdateCard(currentState, typedAction)
	case DeleteCard:
		return applyDeleteCard(currentState, typedAction)
	case ToggleCardPin:
		return applyToggleCardPin(currentState, typedAction, stamp)
	case ReorderCards:
		return applyReorderCards(currentState, typedAction)
	case InviteFriend:
		return applyFriendStatus(currentState, typedAction.UserID, model.FriendStatusPendingSent)
	case AcceptFriend:
		return applyFriendStatus(currentState, typedAction.UserID, model.FriendStatusFriend)
	case DeclineFriend:
		return applyFriendStatus(currentState, typedAction.UserID, model.FriendStatusNone)
	case CancelInvitation:
		return applyFriendStatus(currentState, typedAction.UserID, model.FriendStatusNone)
	case TogglePin:
		return applyTogglePin(currentState, typedAction)
	case ToggleArchive:
		return applyToggleArchive(currentState, typedAction)
	case DeleteBasket:
		return applyDeleteBasket(currentState, typedAction)
	case AddCardScribble:
		return applyAddCardScribble(currentState, typedAction)
	default:
		return currentState
	}
}

func applyViewBasket(currentState model.AppState, action ViewBasket, stamp Stamp) model.AppState {
	currentState.Baskets = mapBaskets(currentState.Baskets, func(basket model.Basket) model.Basket {
		if basket.ID == action.BasketID {
			basket.LastViewedAt = stamp.Now
		}
		return basket
	})
	return currentState
}

func applyAddBasket(currentState model.AppState, action AddBasket, stamp Stamp) model.AppState {
	newBasket := action.Basket.Clone()

	creatorMember := model.Member{
		UserID:   currentState.CurrentUser.ID,
		Role:     model.RoleAdmin,
		JoinedAt: stamp.Now,
		Status:   model.MemberStatusAccepted,
	}
	normalizedMembers := []model.Member{creatorMember}
	for _, member := range newBasket.Members {
		if member.UserID == currentState.CurrentUser.ID {
			continue
		}
		member.Status = model.MemberStatusPending
		normalizedMembers = append(normalizedMembers, member)
	}
	newBasket.Members = normalizedMembers
	newBasket.Scribbles = nil

	currentState.Baskets = append([]model.Basket{newBasket}, currentState.Baskets...)
	currentState.Activities = prependActivity(currentState.Activities, model.Activity{
		ID:         stamp.NewID(),
		Type:       model.ActivityBasketAdded,
		UserID:     currentState.CurrentUser.ID,
		UserName:   currentState.CurrentUser.Name,
		TargetID:   newBasket.ID,
		TargetName: newBasket.Title,
		Timestamp:  stamp.Now,
	})
	return currentState
}

func applyUpdateBasket(currentState model.AppState, action UpdateBasket) model.AppState {
	currentState.Baskets = mapBaskets(currentState.Baskets, func(basket model.Basket) model.Basket {
		if basket.ID != action.BasketID {
			return basket
		}
		return mergeBasketUpdate(basket, action.Updates)
	})
	return currentState
}

func mergeBasketUpdate(basket model.Basket, updates BasketUpdate) model.Basket {
	if updates.Title != nil {
		basket.Title = *updates.Title
	}
	if updates.Description != nil {
		basket.Description = *updates.Description
	}
	if updates.Color != nil {
		basket.Color = *updates.Color
	}
	if updates.Image != nil {
		basket.Image = *updates.Image
	}
	if updates.Members != nil {
		basket.Members = append([]model.Member(nil), updates.Members...)
	}
	if updates.IsPinned != nil {
		basket.IsPinned = *updates.IsPinned
	}
	if updates.IsArchived != nil {
		basket.IsArchived = *updates.IsArchived
	}
	if updates.GroupID != nil {
		basket.GroupID = *updates.GroupID
	}
	if updates.ViewMode != nil {
		basket.ViewMode = *updates.ViewMode
	}
	return basket
}

func applyAcceptBasketInvitation(currentState model.AppState, action AcceptBasketInvitation, stamp Stamp) model.AppState {
	currentState.Baskets = mapBaskets(currentState.Baskets, func(basket model.Basket) model.Basket {
		if basket.ID != action.BasketID {
			return basket
		}
		basket.Members = mapMembers(basket.Members, func(member model.Member) model.Member {
			if member.UserID == currentState.CurrentUser.ID {
				member.Status = model.MemberStatusAccepted
			}
			return member
		})
		return basket
	})

	targetName := fallbackTargetName
	if basket, found := findBasket(currentState.Baskets, action.BasketID); found {
		targetName = basket.Title
	}
	currentState.Activities = prependActivity(currentState.Activities, model.Activity{
		ID:         stamp.NewID(),
		Type:       model.ActivityBasketInvitationAccepted,
		UserID:     currentState.CurrentUser.ID,
		UserName:   currentState.CurrentUser.Name,
		TargetID:   action.BasketID,
		TargetName: targetName,
		Timestamp:  stamp.Now,
	})
	return currentState
}

func applyDeclineBasketInvitation(currentState model.AppState, action DeclineBasketInvitation) model.AppState {
	currentState.Baskets = filterBaskets(currentState.Baskets, action.BasketID)
	return currentState
}

func applyRemoveMemberFromBasket(currentState model.AppState, action RemoveMemberFromBasket) model.AppState {
	currentState.Baskets = mapBaskets(currentState.Baskets, func(basket model.Basket) model.Basket {
		if basket.ID != action.BasketID {
			return basket
		}
		keptMembers := make([]model.Member, 0, len(basket.Members))
		for _, member := range basket.Members {
			if member.UserID != action.UserID {
				keptMembers = append(keptMembers, member)
			}
		}
		basket.Members = keptMembers
		return basket
	})
	return currentState
}

func applyAddBasketScribble(currentState model.AppState, action AddBasketScribble) model.AppState {
	currentState.Baskets = mapBaskets(currentState.Baskets, func(basket model.Basket) model.Basket {
		if basket.ID != action.BasketID {
			return basket
		}
		basket.Scribbles = append(append([]model.Scribble(nil), basket.Scribbles...), action.Scribble)
		return basket
	})
	return currentState
}

func applyMarkBasketChatRead(currentState model.AppState, action MarkBasketChatRead, stamp Stamp) model.AppState {
	currentState.Baskets = mapBaskets(currentState.Baskets, func(basket model.Basket) model.Basket {
		if basket.ID == action.BasketID {
			basket.LastReadChatAt = stamp.Now
		}
		return basket
	})
	return currentState
}

func applyAddCard(currentState model.AppState, action AddCard, stamp Stamp) model.AppState {
	newCard := action.Card.Clone()

	homeBasketID := ""
	if len(newCard.BasketIDs) > 0 {
		homeBasketID = newCard.BasketIDs[0]
	}
	highestOrder := 0
	for _, card := range currentState.Cards {
		if card.InBasket(homeBasketID) && card.Order > highestOrder {
			highestOrder = card.Order
		}
	}
	newCard.Order = highestOrder + 1

	currentState.Cards = append(append([]model.Card(nil), currentState.Cards...), newCard)

	targetID, targetName := fallbackTargetID, fallbackTargetName
	if basket, found := findBasket(currentState.Baskets, homeBasketID); found {
		targetID, targetName = basket.ID, basket.Title
	}
	currentState.Activities = prependActivity(currentState.Activities, model.Activity{
		ID:         stamp.NewID(),
		Type:       model.ActivityCardAdded,
		UserID:     currentState.CurrentUser.ID,
		UserName:   currentState.CurrentUser.Name,
		TargetID:   targetID,
		TargetName: targetName,
		Timestamp:  stamp.Now,
	})
	return currentState
}

func applyUpdateCard(currentState model.AppState, action UpdateCard) model.AppState {
	currentState.Cards = mapCards(currentState.Cards, func(card model.Card) model.Card {
		if card.ID != action.CardID {
			return card
		}
		return mergeCardUpdate(card, action.Updates)
	})
	return currentState
}

func mergeCardUpdate(card model.Card, updates CardUpdate) model.Card {
	if updates.Text != nil {
		card.Text = *updates.Text
	}
	if updates.Attachments != nil {
		card.Attachments = append([]model.Attachment(nil), updates.Attachments...)
	}
	if updates.BasketIDs != nil {
		card.BasketIDs = append([]string(nil), updates.BasketIDs...)
	}
	if updates.IsPinned != nil {
		card.IsPinned = *updates.IsPinned
	}
	if updates.Order != nil {
		card.Order = *updates.Order
	}
	return card
}

func applyDeleteCard(currentState model.AppState, action DeleteCard) model.AppState {
	keptCards := make([]model.Card, 0, len(currentState.Cards))
	for _, card := range currentState.Cards {
		if card.ID != action.CardID {
			keptCards = append(keptCards, card)
		}
	}
	currentState.Cards = keptCards
	return currentState
}

func applyToggleCardPin(currentState model.AppState, action ToggleCardPin, stamp Stamp) model.AppState {
	var toggledCard model.Card
	cardFound := false
	currentState.Cards = mapCards(currentState.Cards, func(card model.Card) model.Card {
		if card.ID == action.CardID {
			card.IsPinned = !card.IsPinned
			toggledCard = card
			cardFound = true
		}
		return card
	})
	if !cardFound {
		return currentState
	}

	activityType := model.ActivityCardUnpinned
	if toggledCard.IsPinned {
		activityType = model.ActivityCardPinned
	}
	targetID, targetName := fallbackTargetID, fallbackTargetName
	if len(toggledCard.BasketIDs) > 0 {
		if basket, found := findBasket(currentState.Baskets, toggledCard.BasketIDs[0]); found {
			targetID, targetName = basket.ID, basket.Title
		}
	}
	currentState.Activities = prependActivity(currentState.Activities, model.Activity{
		ID:         stamp.NewID(),
		Type:       activityType,
		UserID:     currentState.CurrentUser.ID,
		UserName:   currentState.CurrentUser.Name,
		TargetID:   targetID,
		TargetName: targetName,
		Timestamp:  stamp.Now,
	})
	return currentState
}

func applyReorderCards(currentState model.AppState, action ReorderCards) model.AppState {
	orderedCards := cardsInDisplayOrder(currentState.Cards, action.BasketID)

	sourceIndex, targetIndex := -1, -1
	for cardIndex, card := range orderedCards {
		switch card.ID {
		case action.SourceCardID:
			sourceIndex = cardIndex
		case action.TargetCardID:
			targetIndex = cardIndex
		}
	}
	if sourceIndex < 0 || targetIndex < 0 {
		return currentState
	}

	movedCard := orderedCards[sourceIndex]
	withoutSource := append(append([]model.Card(nil), orderedCards[:sourceIndex]...), orderedCards[sourceIndex+1:]...)
	resequenced := make([]model.Card, 0, len(orderedCards))
	resequenced = append(resequenced, withoutSource[:targetIndex]...)
	resequenced = append(resequenced, movedCard)
	resequenced = append(resequenced, withoutSource[targetIndex:]...)

	orderByCardID := make(map[string]int, len(resequenced))
	for cardIndex, card := range resequenced {
		orderByCardID[card.ID] = cardIndex + 1
	}

	currentState.Cards = mapCards(currentState.Cards, func(card model.Card) model.Card {
		if newOrder, reordered := orderByCardID[card.ID]; reordered {
			card.Order = newOrder
		}
		return card
	})
	return currentState
}

func applyFriendStatus(currentState model.AppState, userID string, newStatus model.FriendStatus) model.AppState {
	newFriends := make([]model.User, len(currentState.Friends))
	for friendIndex, friend := range currentState.Friends {
		if friend.ID == userID {
			friend.Status = newStatus
		}
		newFriends[friendIndex] = friend
	}
	currentState.Friends = newFriends
	return currentState
}

func applyTogglePin(currentState model.AppState, action TogglePin) model.AppState {
	currentState.Baskets = mapBaskets(currentState.Baskets, func(basket model.Basket) model.Basket {
		if basket.ID == action.BasketID {
			basket.IsPinned = !basket.IsPinned
		}
		return basket
	})
	return currentState
}

func applyToggleArchive(currentState model.AppState, action ToggleArchive) model.AppState {
	currentState.Baskets = mapBaskets(currentState.Baskets, func(basket model.Basket) model.Basket {
		if basket.ID == action.BasketID {
			basket.IsArchived = !basket.IsArchived
		}
		return basket
	})
	return currentState
}

func applyDeleteBasket(currentState model.AppState, action DeleteBasket) model.AppState {
	currentState.Baskets = filterBaskets(currentState.Baskets, action.BasketID)
	return currentState
}

func applyAddCardScribble(currentState model.AppState, action AddCardScribble) model.AppState {
	currentState.Cards = mapCards(currentState.Cards, func(card model.Card) model.Card {
		if card.ID != action.CardID {
			return card
		}
		card.Scribbles = append(append([]model.Scribble(nil), card.Scribbles...), action.Scribble)
		return card
	})
	return currentState
}

// cardsInDisplayOrder returns the basket's cards sorted the way a board
// presents them: pinned first, then ascending order rank, then ascending
// creation time.
func cardsInDisplayOrder(cards []model.Card, basketID string) []model.Card {
	basketCards := make([]model.Card, 0, len(cards))
	for _, card := range cards {
		if card.InBasket(basketID) {
			basketCards = append(basketCards, card)
		}
	}
	sort.SliceStable(basketCards, func(leftIndex, rightIndex int) bool {
		return model.CompareCardsForDisplay(basketCards[leftIndex], basketCards[rightIndex]) < 0
	})
	return basketCards
}

func mapBaskets(baskets []model.Basket, transform func(model.Basket) model.Basket) []model.Basket {
	newBaskets := make([]model.Basket, len(baskets))
	for basketIndex, basket := range baskets {
		newBaskets[basketIndex] = transform(basket)
	}
	return newBaskets
}

func mapMembers(members []model.Member, transform func(model.Member) model.Member) []model.Member {
	newMembers := make([]model.Member, len(members))
	for memberIndex, member := range members {
		newMembers[memberIndex] = transform(member)
	}
	return newMembers
}

func mapCards(cards []model.Card, transform func(model.Card) model.Card) []model.Card {
	newCards := make([]model.Card, len(cards))
	for cardIndex, card := range cards {
		newCards[cardIndex] = transform(card)
	}
	return newCards
}

func filterBaskets(baskets []model.Basket, basketID string) []model.Basket {
	keptBaskets := make([]model.Basket, 0, len(baskets))
	for _, basket := range baskets {
		if basket.ID != basketID {
			keptBaskets = append(keptBaskets, basket)
		}
	}
	return keptBaskets
}

func findBasket(baskets []model.Basket, basketID string) (model.Basket, bool) {
	for _, basket := range baskets {
		if basket.ID == basketID {
			return basket, true
		}
	}
	return model.Basket{}, false
}

func prependActivity(activities []model.Activity, newActivity model.Activity) []model.Activity {
	return append([]model.Activity{newActivity}, activities...)
}
