package constants

const (
	PostFood        = "post_food"
	ViewOwnListings = "view_own_listings"
	ViewAvailable   = "view_available_listings"
	ViewClaimed     = "view_claimed_listings"
	ClaimFood       = "claim_food"
	CollectFood     = "collect_food"
)
