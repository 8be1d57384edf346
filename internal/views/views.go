// Package views derives presentation data from an AppState snapshot. Every
// function is pure: same state and arguments, same result, no mutation.
package views

import (
	"sort"
	"strings"

	"github.com/MarcoPoloResearchLab/boxxit/internal/model"
)

// BasketTab selects which slice of the basket list a screen shows.
type BasketTab string

const (
	TabRecent   BasketTab = "recent"
	TabAlpha    BasketTab = "alpha"
	TabArchived BasketTab = "archived"
)

// BasketList returns the baskets for one tab, optionally filtered by a
// case-insensitive title substring. The archived tab shows only archived
// baskets; the other tabs hide them. Recent sorts pinned baskets ahead of
// the rest and most recently viewed first; alpha sorts by title alone.
func BasketList(currentState model.AppState, tab BasketTab, filter string) []model.Basket {
	loweredFilter := strings.ToLower(filter)

	selected := make([]model.Basket, 0, len(currentState.Baskets))
	for _, basket := range currentState.Baskets {
		if basket.IsArchived != (tab == TabArchived) {
			continue
		}
		if loweredFilter != "" && !strings.Contains(strings.ToLower(basket.Title), loweredFilter) {
			continue
		}
		selected = append(selected, basket)
	}

	switch tab {
	case TabAlpha:
		sort.SliceStable(selected, func(leftIndex, rightIndex int) bool {
			return strings.ToLower(selected[leftIndex].Title) < strings.ToLower(selected[rightIndex].Title)
		})
	case TabArchived:
		sort.SliceStable(selected, func(leftIndex, rightIndex int) bool {
			return selected[leftIndex].LastViewedAt > selected[rightIndex].LastViewedAt
		})
	default:
		sort.SliceStable(selected, func(leftIndex, rightIndex int) bool {
			left, right := selected[leftIndex], selected[rightIndex]
			if left.IsPinned != right.IsPinned {
				return left.IsPinned
			}
			return left.LastViewedAt > right.LastViewedAt
		})
	}
	return selected
}

// HasNewActivity reports whether anything happened in the basket since the
// current user last viewed it: a newer card, a newer chat message, or the
// basket's own creation.
func HasNewActivity(currentState model.AppState, basket model.Basket) bool {
	latest := basket.CreatedAt
	for _, card := range currentState.Cards {
		if card.InBasket(basket.ID) && card.Timestamp > latest {
			latest = card.Timestamp
		}
	}
	for _, scribble := range basket.Scribbles {
		if scribble.Timestamp > latest {
			latest = scribble.Timestamp
		}
	}
	return latest > basket.LastViewedAt
}

// HasUnreadChat reports whether the basket's chat holds messages newer than
// the current user's last read mark. A basket with no chat is never unread.
func HasUnreadChat(basket model.Basket) bool {
	if len(basket.Scribbles) == 0 {
		return false
	}
	if basket.LastReadChatAt == 0 {
		return true
	}
	latest := int64(0)
	for _, scribble := range basket.Scribbles {
		if scribble.Timestamp > latest {
			latest = scribble.Timestamp
		}
	}
	return latest > basket.LastReadChatAt
}

// BasketCards returns the basket's cards in display order: pinned first,
// then ascending order rank, then ascending creation time. A non-empty
// filter keeps only cards whose text contains it, case-insensitively.
func BasketCards(currentState model.AppState, basketID string, filter string) []model.Card {
	loweredFilter := strings.ToLower(filter)

	selected := make([]model.Card, 0, len(currentState.Cards))
	for _, card := range currentState.Cards {
		if !card.InBasket(basketID) {
			continue
		}
		if loweredFilter != "" && !strings.Contains(strings.ToLower(card.Text), loweredFilter) {
			continue
		}
		selected = append(selected, card)
	}
	sort.SliceStable(selected, func(leftIndex, rightIndex int) bool {
		return model.CompareCardsForDisplay(selected[leftIndex], selected[rightIndex]) < 0
	})
	return selected
}

// PinnedCards returns every pinned card in the order the state holds them.
func PinnedCards(currentState model.AppState) []model.Card {
	pinned := make([]model.Card, 0, len(currentState.Cards))
	for _, card := range currentState.Cards {
		if card.IsPinned {
			pinned = append(pinned, card)
		}
	}
	return pinned
}

// Feed returns activities matching the query, oldest first. The query is a
// case-insensitive substring matched against the actor name, the target
// name, or the activity type; an empty query matches everything.
func Feed(currentState model.AppState, query string) []model.Activity {
	loweredQuery := strings.ToLower(query)

	selected := make([]model.Activity, 0, len(currentState.Activities))
	for _, activity := range currentState.Activities {
		if loweredQuery != "" && !activityMatches(activity, loweredQuery) {
			continue
		}
		selected = append(selected, activity)
	}
	sort.SliceStable(selected, func(leftIndex, rightIndex int) bool {
		return selected[leftIndex].Timestamp < selected[rightIndex].Timestamp
	})
	return selected
}

func activityMatches(activity model.Activity, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(activity.UserName), loweredQuery) ||
		strings.Contains(strings.ToLower(activity.TargetName), loweredQuery) ||
		strings.Contains(strings.ToLower(string(activity.Type)), loweredQuery)
}

// MemberDirectory returns the current user plus every friend with a live
// connection edge, filtered by a case-insensitive name or email substring.
// The current user sorts first when they survive the filter; everyone else
// is alphabetical by name.
func MemberDirectory(currentState model.AppState, query string) []model.User {
	loweredQuery := strings.ToLower(query)

	others := make([]model.User, 0, len(currentState.Friends))
	for _, friend := range currentState.Friends {
		if friend.Status == model.FriendStatusNone || friend.Status == "" {
			continue
		}
		if !userMatches(friend, loweredQuery) {
			continue
		}
		others = append(others, friend)
	}
	sort.SliceStable(others, func(leftIndex, rightIndex int) bool {
		return strings.ToLower(others[leftIndex].Name) < strings.ToLower(others[rightIndex].Name)
	})

	if userMatches(currentState.CurrentUser, loweredQuery) {
		return append([]model.User{currentState.CurrentUser}, others...)
	}
	return others
}

func userMatches(user model.User, loweredQuery string) bool {
	if loweredQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(user.Name), loweredQuery) ||
		strings.Contains(strings.ToLower(user.Email), loweredQuery)
}

// SearchResults holds the three independent result sets of a global search.
type SearchResults struct {
	Baskets []model.Basket
	Cards   []model.Card
	Members []model.User
}

// Search matches baskets by title or description, cards by text, and the
// member directory by name or email. The sets are independent: a hit in one
// implies nothing about the others. An empty query returns three empty sets.
func Search(currentState model.AppState, query string) SearchResults {
	if query == "" {
		return SearchResults{}
	}
	loweredQuery := strings.ToLower(query)

	results := SearchResults{}
	for _, basket := range currentState.Baskets {
		if strings.Contains(strings.ToLower(basket.Title), loweredQuery) ||
			strings.Contains(strings.ToLower(basket.Description), loweredQuery) {
			results.Baskets = append(results.Baskets, basket)
		}
	}
	for _, card := range currentState.Cards {
		if strings.Contains(strings.ToLower(card.Text), loweredQuery) {
			results.Cards = append(results.Cards, card)
		}
	}
	results.Members = MemberDirectory(currentState, query)
	return results
}
