package shell

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MarcoPoloResearchLab/boxxit/internal/model"
	"github.com/MarcoPoloResearchLab/boxxit/internal/state"
	"github.com/MarcoPoloResearchLab/boxxit/internal/views"
)

func (s *Shell) dispatchCommand(command string, args []string) error {
	switch command {
	case "boxes":
		return s.handleBoxes(args)
	case "open":
		return s.handleOpen(args)
	case "new-box":
		return s.handleNewBox(args)
	case "edit-box":
		return s.handleEditBox(args)
	case "clone-box":
		return s.handleCloneBox(args)
	case "pin-box":
		return s.handlePinBox(args)
	case "archive-box":
		return s.handleArchiveBox(args)
	case "delete-box":
		return s.handleDeleteBox(args)
	case "view-mode":
		return s.handleViewMode(args)
	case "accept":
		return s.handleAccept(args)
	case "decline":
		return s.handleDecline(args)
	case "remove-member":
		return s.handleRemoveMember(args)
	case "chat":
		return s.handleChat(args)
	case "say":
		return s.handleSay(args)
	case "comment":
		return s.handleComment(args)
	case "new-card":
		return s.handleNewCard(args)
	case "edit-card":
		return s.handleEditCard(args)
	case "delete-card":
		return s.handleDeleteCard(args)
	case "pin-card":
		return s.handlePinCard(args)
	case "move-card":
		return s.handleMoveCard(args)
	case "pinned":
		return s.handlePinned()
	case "feed":
		return s.handleFeed(args)
	case "members":
		return s.handleMembers(args)
	case "member":
		return s.handleMember(args)
	case "invite":
		return s.handleInvite(args)
	case "accept-friend":
		return s.handleAcceptFriend(args)
	case "decline-friend":
		return s.handleDeclineFriend(args)
	case "cancel-invite":
		return s.handleCancelInvite(args)
	case "search":
		return s.handleSearch(args)
	default:
		return fmt.Errorf("unknown command: %s (try help)", command)
	}
}

func (s *Shell) handleBoxes(args []string) error {
	tab := views.TabRecent
	filter := ""
	for argIndex := 0; argIndex < len(args); argIndex++ {
		switch args[argIndex] {
		case "recent", "alpha", "archived":
			tab = views.BasketTab(args[argIndex])
		case "--filter":
			if argIndex+1 >= len(args) {
				return fmt.Errorf("--filter needs a value")
			}
			argIndex++
			filter = args[argIndex]
		default:
			return fmt.Errorf("unknown argument: %s", args[argIndex])
		}
	}

	currentState := s.store.State()

	if tab == views.TabRecent && filter == "" {
		if pinned := views.PinnedCards(currentState); len(pinned) > 0 {
			fmt.Fprintln(s.out, "Pinned cards:")
			for _, card := range pinned {
				fmt.Fprintf(s.out, "  %s  %s\n", card.ID, card.Text)
			}
			fmt.Fprintln(s.out)
		}
	}

	listed := views.BasketList(currentState, tab, filter)
	if len(listed) == 0 {
		fmt.Fprintln(s.out, "No boxes.")
		return nil
	}
	for _, basket := range listed {
		markers := ""
		if basket.IsPinned {
			markers += " [pinned]"
		}
		if views.HasNewActivity(currentState, basket) {
			markers += " [new]"
		}
		if views.HasUnreadChat(basket) {
			markers += " [unread chat]"
		}
		fmt.Fprintf(s.out, "%s  %q%s  %d cards, %d members, by %s\n",
			basket.ID,
			basket.Title,
			markers,
			views.CardCount(currentState, basket.ID),
			views.AcceptedMemberCount(basket),
			views.CreatorName(currentState, basket),
		)
	}
	return nil
}

func (s *Shell) handleOpen(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: open <box>")
	}
	currentState := s.store.State()
	basket, resolveError := resolveBasket(currentState, args[0])
	if resolveError != nil {
		return resolveError
	}

	if member, found := basket.MemberOf(currentState.CurrentUser.ID); found && member.Status == model.MemberStatusPending {
		fmt.Fprintf(s.out, "%s invited you to %q.\n", views.CreatorName(currentState, basket), basket.Title)
		fmt.Fprintf(s.out, "Use: accept %s  or  decline %s\n", basket.ID, basket.ID)
		return nil
	}

	s.store.Dispatch(state.ViewBasket{BasketID: basket.ID})
	openedState := s.store.State()

	fmt.Fprintf(s.out, "%s — %s (%s view)\n", basket.Title, basket.Description, basket.ViewMode)
	cards := views.BasketCards(openedState, basket.ID, "")
	if len(cards) == 0 {
		fmt.Fprintln(s.out, "No cards yet.")
		return nil
	}
	for _, card := range cards {
		pinMarker := ""
		if card.IsPinned {
			pinMarker = " [pinned]"
		}
		fmt.Fprintf(s.out, "%s%s  %s\n", card.ID, pinMarker, card.Text)
		for _, attachment := range card.Attachments {
			fmt.Fprintf(s.out, "    (%s) %s\n", attachment.Type, attachment.URL)
		}
		for _, scribble := range card.Scribbles {
			fmt.Fprintf(s.out, "    %s: %s\n", scribble.AuthorName, scribble.Text)
		}
	}
	return nil
}

func (s *Shell) handleNewBox(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: new-box <title> [description]")
	}
	now := s.clock().UnixMilli()
	newBasket := model.Basket{
		ID:           s.nextID(),
		Title:        args[0],
		Description:  strings.Join(args[1:], " "),
		CreatorID:    s.store.State().CurrentUser.ID,
		CreatedAt:    now,
		LastViewedAt: now,
		ViewMode:     model.ViewModeMax,
	}
	s.store.Dispatch(state.AddBasket{Basket: newBasket})
	fmt.Fprintf(s.out, "Created %q (%s)\n", newBasket.Title, newBasket.ID)
	return nil
}

func (s *Shell) handleEditBox(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: edit-box <box> <title|description|color> <value>")
	}
	basket, resolveError := resolveBasket(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}

	value := args[2]
	updates := state.BasketUpdate{}
	switch args[1] {
	case "title":
		updates.Title = &value
	case "description":
		updates.Description = &value
	case "color":
		updates.Color = &value
	default:
		return fmt.Errorf("unknown field: %s", args[1])
	}
	s.store.Dispatch(state.UpdateBasket{BasketID: basket.ID, Updates: updates})
	fmt.Fprintf(s.out, "Updated %s of %s\n", args[1], basket.ID)
	return nil
}

func (s *Shell) handleCloneBox(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: clone-box <box>")
	}
	currentState := s.store.State()
	basket, resolveError := resolveBasket(currentState, args[0])
	if resolveError != nil {
		return resolveError
	}

	now := s.clock().UnixMilli()
	clonedBasket := model.Basket{
		ID:           s.nextID(),
		Title:        basket.Title + " (Copy)",
		Description:  basket.Description,
		Color:        basket.Color,
		Image:        basket.Image,
		GroupID:      basket.GroupID,
		CreatorID:    currentState.CurrentUser.ID,
		CreatedAt:    now,
		LastViewedAt: now,
		ViewMode:     basket.ViewMode,
	}
	s.store.Dispatch(state.AddBasket{Basket: clonedBasket})
	fmt.Fprintf(s.out, "Cloned into %q (%s)\n", clonedBasket.Title, clonedBasket.ID)
	return nil
}

func (s *Shell) handlePinBox(args []string) error {
	return s.basketAction(args, "pin-box", func(basketID string) state.Action {
		return state.TogglePin{BasketID: basketID}
	})
}

func (s *Shell) handleArchiveBox(args []string) error {
	return s.basketAction(args, "archive-box", func(basketID string) state.Action {
		return state.ToggleArchive{BasketID: basketID}
	})
}

func (s *Shell) handleDeleteBox(args []string) error {
	return s.basketAction(args, "delete-box", func(basketID string) state.Action {
		return state.DeleteBasket{BasketID: basketID}
	})
}

func (s *Shell) handleViewMode(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: view-mode <box>")
	}
	basket, resolveError := resolveBasket(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}

	toggled := model.ViewModeMini
	if basket.ViewMode == model.ViewModeMini {
		toggled = model.ViewModeMax
	}
	s.store.Dispatch(state.UpdateBasket{BasketID: basket.ID, Updates: state.BasketUpdate{ViewMode: &toggled}})
	fmt.Fprintf(s.out, "%s now renders %s cards\n", basket.ID, toggled)
	return nil
}

func (s *Shell) handleAccept(args []string) error {
	return s.basketAction(args, "accept", func(basketID string) state.Action {
		return state.AcceptBasketInvitation{BasketID: basketID}
	})
}

func (s *Shell) handleDecline(args []string) error {
	return s.basketAction(args, "decline", func(basketID string) state.Action {
		return state.DeclineBasketInvitation{BasketID: basketID}
	})
}

func (s *Shell) handleRemoveMember(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: remove-member <box> <user>")
	}
	currentState := s.store.State()
	basket, resolveError := resolveBasket(currentState, args[0])
	if resolveError != nil {
		return resolveError
	}
	member, memberError := resolveUser(currentState, args[1])
	if memberError != nil {
		return memberError
	}
	s.store.Dispatch(state.RemoveMemberFromBasket{BasketID: basket.ID, UserID: member.ID})
	fmt.Fprintf(s.out, "Removed %s from %s\n", member.Name, basket.ID)
	return nil
}

func (s *Shell) handleChat(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: chat <box>")
	}
	basket, resolveError := resolveBasket(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}

	if len(basket.Scribbles) == 0 {
		fmt.Fprintln(s.out, "No messages yet.")
	}
	for _, scribble := range basket.Scribbles {
		fmt.Fprintf(s.out, "[%s] %s: %s\n", formatTime(scribble.Timestamp), scribble.AuthorName, scribble.Text)
	}
	s.store.Dispatch(state.MarkBasketChatRead{BasketID: basket.ID})
	return nil
}

func (s *Shell) handleSay(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: say <box> <text>")
	}
	basket, resolveError := resolveBasket(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}
	s.store.Dispatch(state.AddBasketScribble{
		BasketID: basket.ID,
		Scribble: s.newScribble(strings.Join(args[1:], " ")),
	})
	return nil
}

func (s *Shell) handleComment(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: comment <card> <text>")
	}
	card, resolveError := resolveCard(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}
	s.store.Dispatch(state.AddCardScribble{
		CardID:   card.ID,
		Scribble: s.newScribble(strings.Join(args[1:], " ")),
	})
	return nil
}

func (s *Shell) handleNewCard(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: new-card <box> <text>")
	}
	currentState := s.store.State()
	basket, resolveError := resolveBasket(currentState, args[0])
	if resolveError != nil {
		return resolveError
	}

	newCard := model.Card{
		ID:          s.nextID(),
		Text:        strings.Join(args[1:], " "),
		CreatorID:   currentState.CurrentUser.ID,
		CreatorName: currentState.CurrentUser.Name,
		BasketIDs:   []string{basket.ID},
		Timestamp:   s.clock().UnixMilli(),
	}
	s.store.Dispatch(state.AddCard{Card: newCard})
	fmt.Fprintf(s.out, "Added card %s to %q\n", newCard.ID, basket.Title)
	return nil
}

func (s *Shell) handleEditCard(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: edit-card <card> <text>")
	}
	card, resolveError := resolveCard(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}
	newText := strings.Join(args[1:], " ")
	s.store.Dispatch(state.UpdateCard{CardID: card.ID, Updates: state.CardUpdate{Text: &newText}})
	return nil
}

func (s *Shell) handleDeleteCard(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete-card <card>")
	}
	card, resolveError := resolveCard(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}
	s.store.Dispatch(state.DeleteCard{CardID: card.ID})
	fmt.Fprintf(s.out, "Deleted %s\n", card.ID)
	return nil
}

func (s *Shell) handlePinCard(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: pin-card <card>")
	}
	card, resolveError := resolveCard(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}
	s.store.Dispatch(state.ToggleCardPin{CardID: card.ID})
	return nil
}

func (s *Shell) handleMoveCard(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: move-card <box> <source-card> <target-card>")
	}
	currentState := s.store.State()
	basket, basketError := resolveBasket(currentState, args[0])
	if basketError != nil {
		return basketError
	}
	sourceCard, sourceError := resolveCard(currentState, args[1])
	if sourceError != nil {
		return sourceError
	}
	targetCard, targetError := resolveCard(currentState, args[2])
	if targetError != nil {
		return targetError
	}
	s.store.Dispatch(state.ReorderCards{
		BasketID:     basket.ID,
		SourceCardID: sourceCard.ID,
		TargetCardID: targetCard.ID,
	})
	return nil
}

func (s *Shell) handlePinned() error {
	pinned := views.PinnedCards(s.store.State())
	if len(pinned) == 0 {
		fmt.Fprintln(s.out, "Nothing pinned.")
		return nil
	}
	for _, card := range pinned {
		fmt.Fprintf(s.out, "%s  %s\n", card.ID, card.Text)
	}
	return nil
}

func (s *Shell) handleFeed(args []string) error {
	currentState := s.store.State()
	feed := views.Feed(currentState, strings.Join(args, " "))
	if len(feed) == 0 {
		fmt.Fprintln(s.out, "No activity.")
		return nil
	}
	for _, activity := range feed {
		fmt.Fprintf(s.out, "[%s] %s\n", formatTime(activity.Timestamp), views.ActivityLine(activity, currentState.CurrentUser.ID))
	}
	return nil
}

func (s *Shell) handleMembers(args []string) error {
	currentState := s.store.State()
	directory := views.MemberDirectory(currentState, strings.Join(args, " "))
	if len(directory) == 0 {
		fmt.Fprintln(s.out, "Nobody found.")
		return nil
	}
	for _, member := range directory {
		fmt.Fprintf(s.out, "%s  %s <%s>  %s\n",
			member.ID, member.Name, member.Email,
			views.FriendStatusLabel(member, member.ID == currentState.CurrentUser.ID))
	}
	return nil
}

func (s *Shell) handleMember(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: member <user>")
	}
	currentState := s.store.State()
	member, resolveError := resolveUser(currentState, args[0])
	if resolveError != nil {
		return resolveError
	}

	fmt.Fprintf(s.out, "%s <%s>  %s\n", member.Name, member.Email,
		views.FriendStatusLabel(member, member.ID == currentState.CurrentUser.ID))
	shared := views.SharedBaskets(currentState, member.ID)
	if len(shared) == 0 {
		fmt.Fprintln(s.out, "No shared boxes.")
		return nil
	}
	fmt.Fprintln(s.out, "Shared boxes:")
	for _, basket := range shared {
		fmt.Fprintf(s.out, "  %s  %q\n", basket.ID, basket.Title)
	}
	return nil
}

func (s *Shell) handleInvite(args []string) error {
	return s.friendAction(args, "invite", func(userID string) state.Action {
		return state.InviteFriend{UserID: userID}
	})
}

func (s *Shell) handleAcceptFriend(args []string) error {
	return s.friendAction(args, "accept-friend", func(userID string) state.Action {
		return state.AcceptFriend{UserID: userID}
	})
}

func (s *Shell) handleDeclineFriend(args []string) error {
	return s.friendAction(args, "decline-friend", func(userID string) state.Action {
		return state.DeclineFriend{UserID: userID}
	})
}

func (s *Shell) handleCancelInvite(args []string) error {
	return s.friendAction(args, "cancel-invite", func(userID string) state.Action {
		return state.CancelInvitation{UserID: userID}
	})
}

func (s *Shell) handleSearch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: search <query>")
	}
	currentState := s.store.State()
	results := views.Search(currentState, strings.Join(args, " "))

	fmt.Fprintf(s.out, "Boxes (%d):\n", len(results.Baskets))
	for _, basket := range results.Baskets {
		fmt.Fprintf(s.out, "  %s  %q\n", basket.ID, basket.Title)
	}
	fmt.Fprintf(s.out, "Cards (%d):\n", len(results.Cards))
	for _, card := range results.Cards {
		fmt.Fprintf(s.out, "  %s  %s\n", card.ID, card.Text)
	}
	fmt.Fprintf(s.out, "People (%d):\n", len(results.Members))
	for _, member := range results.Members {
		fmt.Fprintf(s.out, "  %s  %s\n", member.ID, member.Name)
	}
	return nil
}

func (s *Shell) basketAction(args []string, usage string, buildAction func(basketID string) state.Action) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <box>", usage)
	}
	basket, resolveError := resolveBasket(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}
	s.store.Dispatch(buildAction(basket.ID))
	return nil
}

func (s *Shell) friendAction(args []string, usage string, buildAction func(userID string) state.Action) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <user>", usage)
	}
	member, resolveError := resolveUser(s.store.State(), args[0])
	if resolveError != nil {
		return resolveError
	}
	s.store.Dispatch(buildAction(member.ID))
	return nil
}

func (s *Shell) newScribble(text string) model.Scribble {
	currentUser := s.store.State().CurrentUser
	return model.Scribble{
		ID:         s.nextID(),
		AuthorID:   currentUser.ID,
		AuthorName: currentUser.Name,
		Text:       text,
		Timestamp:  s.clock().UnixMilli(),
	}
}

func (s *Shell) nextID() string {
	generatedID, idError := s.idProvider.NewID()
	if idError != nil {
		s.logger.Error("id generation failed", zap.Error(idError))
		return fmt.Sprintf("fallback-%d", s.clock().UnixNano())
	}
	return generatedID
}

// resolveBasket matches a reference against basket ids first, then titles,
// case-insensitively.
func resolveBasket(currentState model.AppState, reference string) (model.Basket, error) {
	for _, basket := range currentState.Baskets {
		if basket.ID == reference {
			return basket, nil
		}
	}
	for _, basket := range currentState.Baskets {
		if strings.EqualFold(basket.Title, reference) {
			return basket, nil
		}
	}
	return model.Basket{}, fmt.Errorf("no box matches %q", reference)
}

func resolveCard(currentState model.AppState, reference string) (model.Card, error) {
	for _, card := range currentState.Cards {
		if card.ID == reference {
			return card, nil
		}
	}
	return model.Card{}, fmt.Errorf("no card matches %q", reference)
}

// resolveUser matches a reference against the current user and friends by
// id, then by name, case-insensitively.
func resolveUser(currentState model.AppState, reference string) (model.User, error) {
	candidates := append([]model.User{currentState.CurrentUser}, currentState.Friends...)
	for _, candidate := range candidates {
		if candidate.ID == reference {
			return candidate, nil
		}
	}
	for _, candidate := range candidates {
		if strings.EqualFold(candidate.Name, reference) {
			return candidate, nil
		}
	}
	return model.User{}, fmt.Errorf("no user matches %q", reference)
}

func formatTime(timestampMillis int64) string {
	return time.UnixMilli(timestampMillis).Format("2006-01-02 15:04")
}
