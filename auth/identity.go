package auth

// Identity is the authenticated caller, resolved from a valid access token
// and the account it names. Handlers receive it as an explicit argument.
type Identity struct {
	AccountID string
	Email     string
	Role      string
	IsHost    bool
}

// RequireHost fails with ErrHostOnly unless the caller is a host.
func (i Identity) RequireHost() error {
	if !i.IsHost {
		return ErrHostOnly
	}
	return nil
}
