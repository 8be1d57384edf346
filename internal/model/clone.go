package model

// Clone returns a deep copy of the state. The store hands copies out so a
// host can never mutate the canonical instance behind the reducer's back.
func (s AppState) Clone() AppState {
	copied := s
	copied.Baskets = cloneBaskets(s.Baskets)
	copied.Cards = cloneCards(s.Cards)
	copied.Groups = append([]BasketGroup(nil), s.Groups...)
	copied.Activities = append([]Activity(nil), s.Activities...)
	copied.Friends = append([]User(nil), s.Friends...)
	copied.SeenCardIDs = append([]string(nil), s.SeenCardIDs...)
	return copied
}

// Clone returns a deep copy of the basket including members and chat.
func (b Basket) Clone() Basket {
	copied := b
	copied.Members = append([]Member(nil), b.Members...)
	copied.Scribbles = append([]Scribble(nil), b.Scribbles...)
	return copied
}

// Clone returns a deep copy of the card including attachments, scribbles,
// and basket references.
func (c Card) Clone() Card {
	copied := c
	copied.Attachments = append([]Attachment(nil), c.Attachments...)
	copied.Scribbles = append([]Scribble(nil), c.Scribbles...)
	copied.BasketIDs = append([]string(nil), c.BasketIDs...)
	return copied
}

func cloneBaskets(baskets []Basket) []Basket {
	if baskets == nil {
		return nil
	}
	copied := make([]Basket, len(baskets))
	for i, basket := range baskets {
		copied[i] = basket.Clone()
	}
	return copied
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	copied := make([]Card, len(cards))
	for i, card := range cards {
		copied[i] = card.Clone()
	}
	return copied
}
