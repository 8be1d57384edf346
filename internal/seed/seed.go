// Package seed builds starting states for the application: a demo dataset
// for trying the app out and a minimal empty state for a fresh start.
package seed

import "github.com/MarcoPoloResearchLab/boxxit/internal/model"

// DefaultUser is the demo identity used when configuration supplies none.
var DefaultUser = model.User{
	ID:     "user-1",
	Name:   "Alex Johnson",
	Email:  "alex@example.com",
	Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Alex",
}

// Empty returns a state holding only the current user.
func Empty(currentUser model.User) model.AppState {
	return model.AppState{CurrentUser: currentUser}
}

// Demo returns the demo dataset with all timestamps anchored to the given
// now (Unix milliseconds): two of the user's own baskets, a pending
// invitation from a friend, one card, and a short activity trail.
func Demo(now int64, currentUser model.User) model.AppState {
	return model.AppState{
		CurrentUser: currentUser,
		Friends: []model.User{
			{ID: "user-2", Name: "Sarah Miller", Email: "sarah@example.com", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah", Status: model.FriendStatusFriend},
			{ID: "user-3", Name: "John Doe", Email: "john@example.com", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=John", Status: model.FriendStatusFriend},
			{ID: "user-4", Name: "Emma Wilson", Email: "emma@example.com", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Emma", Status: model.FriendStatusPendingReceived},
			{ID: "user-5", Name: "Mike Ross", Email: "mike@example.com", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Mike", Status: model.FriendStatusNone},
		},
		Groups: []model.BasketGroup{
			{ID: "group-1", Name: "Family"},
			{ID: "group-2", Name: "Work Projects"},
		},
		Baskets: []model.Basket{
			{
				ID:          "basket-1",
				Title:       "Summer Vacation Ideas",
				Description: "Places to visit in Greece and Italy.",
				Color:       "#3B82F6",
				Image:       "https://picsum.photos/seed/beach/400/200",
				Members: []model.Member{
					{UserID: currentUser.ID, Role: model.RoleAdmin, JoinedAt: now, Status: model.MemberStatusAccepted},
					{UserID: "user-2", Role: model.RoleContributor, JoinedAt: now, Status: model.MemberStatusAccepted},
				},
				Scribbles: []model.Scribble{
					{ID: "s1", AuthorID: "user-2", AuthorName: "Sarah Miller", Text: "Check out this beach!", Timestamp: now - 10_000},
				},
				IsPinned:       true,
				CreatorID:      currentUser.ID,
				GroupID:        "group-1",
				CreatedAt:      now - 1_000_000,
				LastViewedAt:   now - 500_000,
				LastReadChatAt: now - 20_000,
				ViewMode:       model.ViewModeMax,
			},
			{
				ID:          "basket-2",
				Title:       "Technical Learning",
				Description: "Resources for React and GenAI.",
				Color:       "#10B981",
				Members: []model.Member{
					{UserID: currentUser.ID, Role: model.RoleAdmin, JoinedAt: now, Status: model.MemberStatusAccepted},
				},
				CreatorID:    currentUser.ID,
				CreatedAt:    now - 2_000_000,
				LastViewedAt: now - 1_000_000,
				ViewMode:     model.ViewModeMax,
			},
			{
				ID:          "basket-invitation",
				Title:       "Secret Project",
				Description: "A top secret invitation.",
				Color:       "#8E8E93",
				Members: []model.Member{
					{UserID: currentUser.ID, Role: model.RoleContributor, JoinedAt: now, Status: model.MemberStatusPending},
					{UserID: "user-3", Role: model.RoleAdmin, JoinedAt: now, Status: model.MemberStatusAccepted},
				},
				CreatorID:    "user-3",
				CreatedAt:    now - 50_000,
				LastViewedAt: now - 50_000,
				ViewMode:     model.ViewModeMax,
			},
		},
		Cards: []model.Card{
			{
				ID:   "card-1",
				Text: "Santorini Travel Guide: Sunset views are amazing.",
				Attachments: []model.Attachment{
					{ID: "att-1", Type: model.AttachmentTypeImage, URL: "https://picsum.photos/seed/santorini/400/300"},
				},
				CreatorID:   currentUser.ID,
				CreatorName: currentUser.Name,
				BasketIDs:   []string{"basket-1"},
				Timestamp:   now - 50_000,
			},
		},
		Activities: []model.Activity{
			{
				ID:         "a1",
				Type:       model.ActivityCardAdded,
				UserID:     currentUser.ID,
				UserName:   currentUser.Name,
				TargetID:   "basket-1",
				TargetName: "Summer Vacation Ideas",
				Timestamp:  now - 50_000,
			},
			{
				ID:         "inv-1",
				Type:       model.ActivityBasketInvited,
				UserID:     "user-3",
				UserName:   "John Doe",
				TargetID:   "basket-invitation",
				TargetName: "Secret Project",
				Timestamp:  now - 40_000,
			},
		},
		FeedSettings: model.FeedSettings{
			ShowCards:     true,
			ShowMembers:   true,
			ShowScribbles: true,
			ShowBaskets:   true,
		},
	}
}
