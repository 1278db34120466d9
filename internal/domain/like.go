package domain

// LikeStatus is the authoritative server answer to a toggle: the caller's
// current liked flag and the set cardinality. Clients reconcile optimistic
// state against it.
type LikeStatus struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
