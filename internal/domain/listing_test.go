package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, 1, 15, 16, 30, 0, 0, time.UTC)

func ngo(name string) Actor {
	return Actor{UserID: uuid.New(), Name: "David Martinez", Role: RoleNGO, OrgID: uuid.New(), OrgName: name}
}

func TestListingStatus_Rank(t *testing.T) {
	assert.Less(t, StatusAvailable.Rank(), StatusClaimed.Rank())
	assert.Less(t, StatusClaimed.Rank(), StatusCollected.Rank())
	assert.False(t, ListingStatus("expired").Valid())
	assert.True(t, StatusCollected.Valid())
}

func TestClaim_Available(t *testing.T) {
	l := &Listing{Status: StatusAvailable}
	actor := ngo("City Food Bank")

	require.NoError(t, l.Claim(actor, at))
	assert.Equal(t, StatusClaimed, l.Status)
	require.NotNil(t, l.ClaimedBy)
	assert.Equal(t, "City Food Bank", *l.ClaimedBy)
	assert.Equal(t, actor.OrgID, *l.ClaimedByOrgID)
	assert.Equal(t, at, *l.ClaimedAt)
	assert.True(t, l.Consistent())
}

func TestClaim_WrongRole(t *testing.T) {
	l := &Listing{Status: StatusAvailable}
	err := l.Claim(Actor{UserID: uuid.New(), Role: RoleOrganizer, OrgID: uuid.New()}, at)
	assert.ErrorIs(t, err, ErrUnauthorizedAction)
	assert.Equal(t, StatusAvailable, l.Status)
	assert.Nil(t, l.ClaimedBy)
}

func TestClaim_AlreadyClaimedKeepsClaimant(t *testing.T) {
	l := &Listing{Status: StatusAvailable}
	first := ngo("City Food Bank")
	require.NoError(t, l.Claim(first, at))

	err := l.Claim(ngo("Shelter Kitchen"), at.Add(time.Minute))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, "City Food Bank", *l.ClaimedBy)
	assert.Equal(t, first.OrgID, *l.ClaimedByOrgID)
}

func TestCollect_Lifecycle(t *testing.T) {
	l := &Listing{Status: StatusAvailable}
	actor := ngo("City Food Bank")

	err := l.Collect(actor, at)
	assert.ErrorIs(t, err, ErrInvalidTransition, "available -> collected must not be allowed")

	require.NoError(t, l.Claim(actor, at))
	require.NoError(t, l.Collect(actor, at.Add(time.Hour)))
	assert.Equal(t, StatusCollected, l.Status)
	assert.True(t, l.Consistent())

	err = l.Collect(actor, at.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, at.Add(time.Hour), *l.CollectedAt)
}

func TestCollect_OnlyClaimant(t *testing.T) {
	l := &Listing{Status: StatusAvailable}
	require.NoError(t, l.Claim(ngo("City Food Bank"), at))

	err := l.Collect(ngo("Shelter Kitchen"), at)
	assert.True(t, errors.Is(err, ErrUnauthorizedAction))
	assert.Equal(t, StatusClaimed, l.Status)
}

func TestTransitions_Monotonic(t *testing.T) {
	actor := ngo("City Food Bank")
	ops := []func(*Listing) error{
		func(l *Listing) error { return l.Claim(actor, at) },
		func(l *Listing) error { return l.Collect(actor, at) },
	}
	// Every sequence of operations keeps rank non-decreasing and the invariant intact.
	for mask := 0; mask < 16; mask++ {
		l := &Listing{Status: StatusAvailable}
		prev := l.Status.Rank()
		for i := 0; i < 4; i++ {
			_ = ops[(mask>>i)&1](l)
			assert.GreaterOrEqual(t, l.Status.Rank(), prev)
			assert.True(t, l.Consistent())
			prev = l.Status.Rank()
		}
	}
}

func TestConsistent(t *testing.T) {
	org := uuid.New()
	assert.True(t, (&Listing{Status: StatusAvailable}).Consistent())
	assert.False(t, (&Listing{Status: StatusAvailable, ClaimedByOrgID: &org}).Consistent())
	assert.False(t, (&Listing{Status: StatusClaimed}).Consistent())
	assert.True(t, (&Listing{Status: StatusCollected, ClaimedByOrgID: &org}).Consistent())
}

func TestExpired(t *testing.T) {
	l := &Listing{ExpiryTime: at}
	assert.True(t, l.Expired(at))
	assert.True(t, l.Expired(at.Add(time.Second)))
	assert.False(t, l.Expired(at.Add(-time.Second)))
}
