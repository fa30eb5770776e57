package storage

// Well-known keys. All values are strings; structured values are JSON.
const (
	KeyCredentials = "users"
	KeySecret      = "apiKey"
	KeyLoggedIn    = "isLoggedIn"
	KeyRemembered  = "rememberedEmail"
	KeyWishlist    = "wishlist"
	KeyTheme       = "theme"
)

// Keys lists every key reel persists.
func Keys() []string {
	return []string{KeyCredentials, KeySecret, KeyLoggedIn, KeyRemembered, KeyWishlist, KeyTheme}
}
