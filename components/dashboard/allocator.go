package dashboard

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
)

const (
	minPanelNumber = 1_000_000
	maxPanelNumber = 999_999_999
)

// RandomIDAllocator draws `<type>_<n>` identifiers with n uniform in
// [1_000_000, 999_999_999], redrawing on collision.
type RandomIDAllocator struct {
	// Draw returns a value in [0, n). Defaults to math/rand/v2.IntN.
	Draw func(n int) int
}

// NewRandomIDAllocator returns the default allocator.
func NewRandomIDAllocator() *RandomIDAllocator {
	return &RandomIDAllocator{Draw: rand.IntN}
}

// Allocate redraws until exists reports no collision.
func (a *RandomIDAllocator) Allocate(typeTag PanelType, exists func(id string) bool) string {
	draw := rand.IntN
	if a != nil && a.Draw != nil {
		draw = a.Draw
	}
	for {
		n := minPanelNumber + draw(maxPanelNumber-minPanelNumber+1)
		id := string(typeTag) + "_" + strconv.Itoa(n)
		if exists == nil || !exists(id) {
			return id
		}
	}
}

// UUIDAllocator returns `<type>_<uuid>` identifiers and never retries.
type UUIDAllocator struct{}

// Allocate satisfies IDAllocator.
func (UUIDAllocator) Allocate(typeTag PanelType, _ func(id string) bool) string {
	return string(typeTag) + "_" + uuid.NewString()
}
