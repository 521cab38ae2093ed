package state

import (
	"e-shopping/internal/domain"
)

// repairIdentity drops users whose normalized email repeats an earlier one
// and closes a session that no longer points at a kept user. It reports
// whether anything was dropped.
func repairIdentity(st IdentityState) (IdentityState, bool) {
	repaired := false

	seen := make(map[string]bool, len(st.Users))
	users := make([]domain.User, 0, len(st.Users))
	for _, u := range st.Users {
		e := domain.NormalizeEmail(u.Email)
		if seen[e] {
			repaired = true
			continue
		}
		seen[e] = true
		users = append(users, u)
	}
	st.Users = users

	if st.CurrentUser != nil {
		cur := st.CurrentUser
		kept := false
		for _, u := range users {
			if u.ID == cur.ID && domain.NormalizeEmail(u.Email) == domain.NormalizeEmail(cur.Email) {
				s := sessionOf(u)
				st.CurrentUser = &s
				kept = true
				break
			}
		}
		if !kept {
			st.CurrentUser = nil
			repaired = true
		}
	}

	return st, repaired
}

// repairCommerce keeps the first cart line and wishlist entry per product id
// and clamps cart quantities. It reports whether anything changed.
func repairCommerce(st commerceSlot) (commerceSlot, bool) {
	repaired := false

	inCart := make(map[string]bool, len(st.CartItems))
	items := make([]domain.CartItem, 0, len(st.CartItems))
	for _, it := range st.CartItems {
		if inCart[it.Product.ID] {
			repaired = true
			continue
		}
		inCart[it.Product.ID] = true
		if q := ClampQty(it.Qty); q != it.Qty {
			it.Qty = q
			repaired = true
		}
		items = append(items, it)
	}
	st.CartItems = items

	inWishlist := make(map[string]bool, len(st.WishlistItems))
	wishlist := make([]domain.Product, 0, len(st.WishlistItems))
	for _, p := range st.WishlistItems {
		if inWishlist[p.ID] {
			repaired = true
			continue
		}
		inWishlist[p.ID] = true
		wishlist = append(wishlist, p)
	}
	st.WishlistItems = wishlist

	return st, repaired
}
