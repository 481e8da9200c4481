// Package codes generates the human-readable, unique codes attached to ledger
// entities (donors, beneficiaries, programs, donations, deliveries).
package codes

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	PrefixDonor       = "DNR"
	PrefixBeneficiary = "BEN"
	PrefixProgram     = "PRG"
	PrefixDonation    = "DON"
	PrefixDelivery    = "DLV"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// New returns prefix-ULID. Codes sort by creation time within a process.
func New(prefix string) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return prefix + "-" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// HasPrefix reports whether code was generated for the given entity prefix.
func HasPrefix(code, prefix string) bool {
	return strings.HasPrefix(code, prefix+"-")
}
