package state

import (
	"reflect"
	"testing"

	"github.com/MarcoPoloResearchLab/boxxit/internal/model"
)

const (
	testUserID       = "user-1"
	testFriendID     = "user-2"
	testBasketID     = "basket-1"
	testOtherBasket  = "basket-2"
	testMissingID    = "missing"
	testCardID       = "card-1"
	testSecondCardID = "card-2"
	testThirdCardID  = "card-3"
)

func testStamp() Stamp {
	counter := 0
	return Stamp{
		Now: 5_000,
		NewID: func() string {
			counter++
			return "generated-" + string(rune('0'+counter))
		},
	}
}

func baseState() model.AppState {
	return model.AppState{
		CurrentUser: model.User{ID: testUserID, Name: "Alex Johnson"},
		Friends: []model.User{
			{ID: testFriendID, Name: "Maria Garcia", Status: model.FriendStatusFriend},
			{ID: "user-3", Name: "James Smith", Status: model.FriendStatusPendingReceived},
		},
		Baskets: []model.Basket{
			{
				ID:    testBasketID,
				Title: "Weekend Trip",
				Members: []model.Member{
					{UserID: testUserID, Role: model.RoleAdmin, JoinedAt: 1_000, Status: model.MemberStatusAccepted},
					{UserID: testFriendID, Role: model.RoleContributor, JoinedAt: 1_100, Status: model.MemberStatusAccepted},
				},
				LastViewedAt: 1_000,
				ViewMode:     model.ViewModeMini,
			},
			{
				ID:    testOtherBasket,
				Title: "Groceries",
				Members: []model.Member{
					{UserID: testUserID, Role: model.RoleContributor, JoinedAt: 1_200, Status: model.MemberStatusPending},
				},
				LastViewedAt: 2_000,
				ViewMode:     model.ViewModeMax,
			},
		},
		Cards: []model.Card{
			{ID: testCardID, BasketIDs: []string{testBasketID}, Text: "pack tent", Timestamp: 1_500, Order: 1},
			{ID: testSecondCardID, BasketIDs: []string{testBasketID}, Text: "book cabin", Timestamp: 1_600, Order: 2},
			{ID: testThirdCardID, BasketIDs: []string{testBasketID}, Text: "buy firewood", Timestamp: 1_700, Order: 3},
		},
		Activities: []model.Activity{
			{ID: "activity-1", Type: model.ActivityCardAdded, UserID: testFriendID, UserName: "Maria Garcia", TargetID: testBasketID, TargetName: "Weekend Trip", Timestamp: 1_500},
		},
		FeedSettings: model.FeedSettings{ShowCards: true, ShowMembers: true, ShowScribbles: true, ShowBaskets: true},
	}
}

func TestApplyLeavesInputStateUntouched(t *testing.T) {
	original := baseState()
	snapshot := original.Clone()

	Apply(original, AddCard{Card: model.Card{ID: "card-9", BasketIDs: []string{testBasketID}}}, testStamp())
	Apply(original, DeleteBasket{BasketID: testBasketID}, testStamp())
	Apply(original, ToggleCardPin{CardID: testCardID}, testStamp())

	if !reflect.DeepEqual(original, snapshot) {
		t.Fatalf("input state mutated by Apply: %+v != %+v", original, snapshot)
	}
}

func TestApplyNilAndUnknownActionsReturnStateUnchanged(t *testing.T) {
	original := baseState()

	afterNil := Apply(original, nil, testStamp())
	if !reflect.DeepEqual(afterNil, original) {
		t.Fatalf("nil action changed state")
	}
}

func TestApplyMissingIDsAreSilentNoOps(t *testing.T) {
	original := baseState()
	stamp := testStamp()

	testCases := []struct {
		name   string
		action Action
	}{
		{name: "view missing basket", action: ViewBasket{BasketID: testMissingID}},
		{name: "update missing basket", action: UpdateBasket{BasketID: testMissingID, Updates: BasketUpdate{Title: stringPtr("x")}}},
		{name: "decline missing invitation", action: DeclineBasketInvitation{BasketID: testMissingID}},
		{name: "remove member from missing basket", action: RemoveMemberFromBasket{BasketID: testMissingID, UserID: testFriendID}},
		{name: "scribble on missing basket", action: AddBasketScribble{BasketID: testMissingID, Scribble: model.Scribble{ID: "s1"}}},
		{name: "mark missing chat read", action: MarkBasketChatRead{BasketID: testMissingID}},
		{name: "update missing card", action: UpdateCard{CardID: testMissingID, Updates: CardUpdate{Text: stringPtr("x")}}},
		{name: "delete missing card", action: DeleteCard{CardID: testMissingID}},
		{name: "toggle pin on missing card", action: ToggleCardPin{CardID: testMissingID}},
		{name: "reorder with missing source", action: ReorderCards{BasketID: testBasketID, SourceCardID: testMissingID, TargetCardID: testCardID}},
		{name: "reorder with missing target", action: ReorderCards{BasketID: testBasketID, SourceCardID: testCardID, TargetCardID: testMissingID}},
		{name: "invite missing friend", action: InviteFriend{UserID: testMissingID}},
		{name: "toggle pin on missing basket", action: TogglePin{BasketID: testMissingID}},
		{name: "toggle archive on missing basket", action: ToggleArchive{BasketID: testMissingID}},
		{name: "delete missing basket", action: DeleteBasket{BasketID: testMissingID}},
		{name: "scribble on missing card", action: AddCardScribble{CardID: testMissingID, Scribble: model.Scribble{ID: "s1"}}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := Apply(original, testCase.action, stamp)
			if !reflect.DeepEqual(result, original) {
				t.Fatalf("expected no-op, state changed: %+v", result)
			}
		})
	}
}

func TestApplyViewBasketStampsLastViewed(t *testing.T) {
	result := Apply(baseState(), ViewBasket{BasketID: testBasketID}, testStamp())

	if result.Baskets[0].LastViewedAt != 5_000 {
		t.Fatalf("expected lastViewedAt 5000, got %d", result.Baskets[0].LastViewedAt)
	}
	if result.Baskets[1].LastViewedAt != 2_000 {
		t.Fatalf("other basket lastViewedAt changed: %d", result.Baskets[1].LastViewedAt)
	}
}

func TestApplyAddBasketNormalizesMembership(t *testing.T) {
	submitted := model.Basket{
		ID:    "basket-3",
		Title: "Book Club",
		Members: []model.Member{
			{UserID: testUserID, Role: model.RoleContributor, JoinedAt: 9, Status: model.MemberStatusPending},
			{UserID: testFriendID, Role: model.RoleContributor, JoinedAt: 9, Status: model.MemberStatusAccepted},
		},
		Scribbles: []model.Scribble{{ID: "stale", Text: "leftover chat"}},
	}

	result := Apply(baseState(), AddBasket{Basket: submitted}, testStamp())

	if len(result.Baskets) != 3 {
		t.Fatalf("expected 3 baskets, got %d", len(result.Baskets))
	}
	created := result.Baskets[0]
	if created.ID != "basket-3" {
		t.Fatalf("new basket not prepended, head is %q", created.ID)
	}
	if len(created.Scribbles) != 0 {
		t.Fatalf("submitted scribbles should be discarded, got %d", len(created.Scribbles))
	}
	creator := created.Members[0]
	if creator.UserID != testUserID || creator.Role != model.RoleAdmin || creator.Status != model.MemberStatusAccepted || creator.JoinedAt != 5_000 {
		t.Fatalf("creator member not normalized: %+v", creator)
	}
	invitee := created.Members[1]
	if invitee.UserID != testFriendID || invitee.Status != model.MemberStatusPending {
		t.Fatalf("invitee should be forced pending: %+v", invitee)
	}

	newest := result.Activities[0]
	if newest.Type != model.ActivityBasketAdded || newest.TargetID != "basket-3" || newest.TargetName != "Book Club" {
		t.Fatalf("unexpected activity: %+v", newest)
	}
}

func TestApplyUpdateBasketMergesOnlyProvidedFields(t *testing.T) {
	newTitle := "Road Trip"
	pinned := true

	result := Apply(baseState(), UpdateBasket{
		BasketID: testBasketID,
		Updates:  BasketUpdate{Title: &newTitle, IsPinned: &pinned},
	}, testStamp())

	updated := result.Baskets[0]
	if updated.Title != "Road Trip" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if !updated.IsPinned {
		t.Fatalf("pin flag not updated")
	}
	if len(updated.Members) != 2 {
		t.Fatalf("members should be untouched when update omits them, got %d", len(updated.Members))
	}
	if updated.ViewMode != model.ViewModeMini {
		t.Fatalf("view mode should be untouched, got %q", updated.ViewMode)
	}
}

func TestApplyAcceptBasketInvitation(t *testing.T) {
	result := Apply(baseState(), AcceptBasketInvitation{BasketID: testOtherBasket}, testStamp())

	member, found := result.Baskets[1].MemberOf(testUserID)
	if !found {
		t.Fatalf("current user membership lost")
	}
	if member.Status != model.MemberStatusAccepted {
		t.Fatalf("expected accepted status, got %q", member.Status)
	}
	newest := result.Activities[0]
	if newest.Type != model.ActivityBasketInvitationAccepted || newest.TargetName != "Groceries" {
		t.Fatalf("unexpected activity: %+v", newest)
	}
}

func TestApplyAcceptBasketInvitationMissingBasketStillRecordsActivity(t *testing.T) {
	result := Apply(baseState(), AcceptBasketInvitation{BasketID: testMissingID}, testStamp())

	if len(result.Baskets) != 2 {
		t.Fatalf("baskets changed for missing id")
	}
	newest := result.Activities[0]
	if newest.TargetID != testMissingID || newest.TargetName != "Box" {
		t.Fatalf("expected fallback target name, got %+v", newest)
	}
}

func TestApplyDeclineInvitationRemovesBasketAndLeavesCardReferences(t *testing.T) {
	result := Apply(baseState(), DeclineBasketInvitation{BasketID: testBasketID}, testStamp())

	if len(result.Baskets) != 1 || result.Baskets[0].ID != testOtherBasket {
		t.Fatalf("basket not removed: %+v", result.Baskets)
	}
	if len(result.Cards) != 3 {
		t.Fatalf("cards should survive basket removal, got %d", len(result.Cards))
	}
	if !result.Cards[0].InBasket(testBasketID) {
		t.Fatalf("card should keep its stale basket reference")
	}
	if len(result.Activities) != 1 || result.Activities[0].TargetID != testBasketID {
		t.Fatalf("activities referencing the basket must survive: %+v", result.Activities)
	}
}

func TestApplyDeleteBasketLeavesDanglingCardReferences(t *testing.T) {
	result := Apply(baseState(), DeleteBasket{BasketID: testBasketID}, testStamp())

	if len(result.Baskets) != 1 || result.Baskets[0].ID != testOtherBasket {
		t.Fatalf("basket not removed: %+v", result.Baskets)
	}
	if len(result.Cards) != 3 {
		t.Fatalf("cards must survive basket deletion, got %d", len(result.Cards))
	}
	for _, card := range result.Cards {
		if !card.InBasket(testBasketID) {
			t.Fatalf("card %s should keep its stale basket reference", card.ID)
		}
	}
	if len(result.Activities) != 1 || result.Activities[0].TargetID != testBasketID {
		t.Fatalf("activities referencing the basket must survive: %+v", result.Activities)
	}
}

func TestApplyRemoveMemberFromBasket(t *testing.T) {
	result := Apply(baseState(), RemoveMemberFromBasket{BasketID: testBasketID, UserID: testFriendID}, testStamp())

	if len(result.Baskets[0].Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(result.Baskets[0].Members))
	}
	if _, found := result.Baskets[0].MemberOf(testFriendID); found {
		t.Fatalf("member should be removed")
	}
}

func TestApplyBasketScribbleAppendsAndReadStamp(t *testing.T) {
	scribble := model.Scribble{ID: "scribble-1", AuthorID: testFriendID, AuthorName: "Maria Garcia", Text: "who brings snacks?", Timestamp: 4_900}

	afterScribble := Apply(baseState(), AddBasketScribble{BasketID: testBasketID, Scribble: scribble}, testStamp())
	if len(afterScribble.Baskets[0].Scribbles) != 1 || afterScribble.Baskets[0].Scribbles[0].ID != "scribble-1" {
		t.Fatalf("scribble not appended: %+v", afterScribble.Baskets[0].Scribbles)
	}

	afterRead := Apply(afterScribble, MarkBasketChatRead{BasketID: testBasketID}, testStamp())
	if afterRead.Baskets[0].LastReadChatAt != 5_000 {
		t.Fatalf("expected lastReadChatAt 5000, got %d", afterRead.Baskets[0].LastReadChatAt)
	}
}

func TestApplyAddCardAssignsNextOrderWithinFirstBasket(t *testing.T) {
	newCard := model.Card{ID: "card-9", BasketIDs: []string{testBasketID}, Text: "bring map", Timestamp: 4_800}

	result := Apply(baseState(), AddCard{Card: newCard}, testStamp())

	if len(result.Cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(result.Cards))
	}
	appended := result.Cards[3]
	if appended.ID != "card-9" {
		t.Fatalf("new card should be appended, tail is %q", appended.ID)
	}
	if appended.Order != 4 {
		t.Fatalf("expected order 4, got %d", appended.Order)
	}
	newest := result.Activities[0]
	if newest.Type != model.ActivityCardAdded || newest.TargetID != testBasketID || newest.TargetName != "Weekend Trip" {
		t.Fatalf("unexpected activity: %+v", newest)
	}
}

func TestApplyAddCardWithUnknownBasketUsesFallbackTarget(t *testing.T) {
	newCard := model.Card{ID: "card-9", BasketIDs: []string{testMissingID}}

	result := Apply(baseState(), AddCard{Card: newCard}, testStamp())

	if result.Cards[3].Order != 1 {
		t.Fatalf("card in empty basket should get order 1, got %d", result.Cards[3].Order)
	}
	newest := result.Activities[0]
	if newest.TargetID != "none" || newest.TargetName != "Box" {
		t.Fatalf("expected fallback activity target, got %+v", newest)
	}
}

func TestApplyUpdateCardMergesOnlyProvidedFields(t *testing.T) {
	newText := "pack a bigger tent"

	result := Apply(baseState(), UpdateCard{CardID: testCardID, Updates: CardUpdate{Text: &newText}}, testStamp())

	updated := result.Cards[0]
	if updated.Text != "pack a bigger tent" {
		t.Fatalf("text not updated: %q", updated.Text)
	}
	if updated.Order != 1 || updated.Timestamp != 1_500 {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
}

func TestApplyDeleteCard(t *testing.T) {
	result := Apply(baseState(), DeleteCard{CardID: testSecondCardID}, testStamp())

	if len(result.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(result.Cards))
	}
	for _, card := range result.Cards {
		if card.ID == testSecondCardID {
			t.Fatalf("card not deleted")
		}
	}
}

func TestApplyToggleCardPinFlipsAndRecordsActivity(t *testing.T) {
	pinnedState := Apply(baseState(), ToggleCardPin{CardID: testCardID}, testStamp())
	if !pinnedState.Cards[0].IsPinned {
		t.Fatalf("card should be pinned")
	}
	if pinnedState.Activities[0].Type != model.ActivityCardPinned {
		t.Fatalf("expected pinned activity, got %q", pinnedState.Activities[0].Type)
	}

	unpinnedState := Apply(pinnedState, ToggleCardPin{CardID: testCardID}, testStamp())
	if unpinnedState.Cards[0].IsPinned {
		t.Fatalf("second toggle should unpin")
	}
	if unpinnedState.Activities[0].Type != model.ActivityCardUnpinned {
		t.Fatalf("expected unpinned activity, got %q", unpinnedState.Activities[0].Type)
	}
}

func TestApplyReorderCardsMovesSourceToTargetPosition(t *testing.T) {
	result := Apply(baseState(), ReorderCards{
		BasketID:     testBasketID,
		SourceCardID: testThirdCardID,
		TargetCardID: testCardID,
	}, testStamp())

	orderByID := map[string]int{}
	for _, card := range result.Cards {
		orderByID[card.ID] = card.Order
	}
	if orderByID[testThirdCardID] != 1 || orderByID[testCardID] != 2 || orderByID[testSecondCardID] != 3 {
		t.Fatalf("unexpected ranks after reorder: %v", orderByID)
	}
}

func TestApplyReorderCardsRenumbersContiguouslyFromOne(t *testing.T) {
	initial := baseState()
	initial.Cards[0].Order = 10
	initial.Cards[1].Order = 25
	initial.Cards[2].Order = 40

	result := Apply(initial, ReorderCards{
		BasketID:     testBasketID,
		SourceCardID: testCardID,
		TargetCardID: testThirdCardID,
	}, testStamp())

	orderByID := map[string]int{}
	for _, card := range result.Cards {
		orderByID[card.ID] = card.Order
	}
	if orderByID[testSecondCardID] != 1 || orderByID[testThirdCardID] != 2 || orderByID[testCardID] != 3 {
		t.Fatalf("expected ranks 1,2,3 for %s,%s,%s, got %v",
			testSecondCardID, testThirdCardID, testCardID, orderByID)
	}
}

func TestApplyReorderCardsIgnoresCardsOutsideBasket(t *testing.T) {
	initial := baseState()
	initial.Cards = append(initial.Cards, model.Card{ID: "card-elsewhere", BasketIDs: []string{testOtherBasket}, Order: 7})

	result := Apply(initial, ReorderCards{
		BasketID:     testBasketID,
		SourceCardID: testCardID,
		TargetCardID: testSecondCardID,
	}, testStamp())

	for _, card := range result.Cards {
		if card.ID == "card-elsewhere" && card.Order != 7 {
			t.Fatalf("card outside the basket was renumbered: %+v", card)
		}
	}
}

func TestApplyFriendTransitions(t *testing.T) {
	testCases := []struct {
		name           string
		action         Action
		userID         string
		expectedStatus model.FriendStatus
	}{
		{name: "invite sets pending sent", action: InviteFriend{UserID: testFriendID}, userID: testFriendID, expectedStatus: model.FriendStatusPendingSent},
		{name: "accept sets friend", action: AcceptFriend{UserID: "user-3"}, userID: "user-3", expectedStatus: model.FriendStatusFriend},
		{name: "decline sets none", action: DeclineFriend{UserID: "user-3"}, userID: "user-3", expectedStatus: model.FriendStatusNone},
		{name: "cancel sets none", action: CancelInvitation{UserID: testFriendID}, userID: testFriendID, expectedStatus: model.FriendStatusNone},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := Apply(baseState(), testCase.action, testStamp())
			for _, friend := range result.Friends {
				if friend.ID == testCase.userID && friend.Status != testCase.expectedStatus {
					t.Fatalf("expected status %q, got %q", testCase.expectedStatus, friend.Status)
				}
			}
		})
	}
}

func TestApplyBasketTogglesAreInvolutions(t *testing.T) {
	original := baseState()

	oncePinned := Apply(original, TogglePin{BasketID: testBasketID}, testStamp())
	if !oncePinned.Baskets[0].IsPinned {
		t.Fatalf("basket should be pinned after one toggle")
	}
	twicePinned := Apply(oncePinned, TogglePin{BasketID: testBasketID}, testStamp())
	if !reflect.DeepEqual(twicePinned, original) {
		t.Fatalf("double toggle should restore the original state")
	}

	onceArchived := Apply(original, ToggleArchive{BasketID: testBasketID}, testStamp())
	if !onceArchived.Baskets[0].IsArchived {
		t.Fatalf("basket should be archived after one toggle")
	}
}

func TestApplyAddCardScribbleAppends(t *testing.T) {
	scribble := model.Scribble{ID: "scribble-1", AuthorID: testFriendID, AuthorName: "Maria Garcia", Text: "nice one", Timestamp: 4_950}

	result := Apply(baseState(), AddCardScribble{CardID: testCardID, Scribble: scribble}, testStamp())

	if len(result.Cards[0].Scribbles) != 1 || result.Cards[0].Scribbles[0].Text != "nice one" {
		t.Fatalf("scribble not appended: %+v", result.Cards[0].Scribbles)
	}
}

func TestApplyActivitiesArePrependedNewestFirst(t *testing.T) {
	result := baseState()
	result = Apply(result, AddCard{Card: model.Card{ID: "card-9", BasketIDs: []string{testBasketID}}}, Stamp{Now: 6_000, NewID: func() string { return "a-first" }})
	result = Apply(result, ToggleCardPin{CardID: "card-9"}, Stamp{Now: 7_000, NewID: func() string { return "a-second" }})

	if len(result.Activities) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(result.Activities))
	}
	if result.Activities[0].ID != "a-second" || result.Activities[1].ID != "a-first" {
		t.Fatalf("activities not newest first: %+v", result.Activities)
	}
}

func stringPtr(value string) *string {
	return &value
}
