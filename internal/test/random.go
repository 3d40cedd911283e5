package test

import (
	"math/rand"
	"sync"
	"time"

	"github.com/polkiloo/storeadmin/internal/domain/model"
)

const documentIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomDocumentID returns a random alphanumeric id shaped like generated
// document store ids.
func RandomDocumentID() string {
	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = documentIDAlphabet[randomIntn(len(documentIDAlphabet))]
	}
	return string(buf)
}

// RandomSlot returns a slot inside bounds.
func RandomSlot(bounds model.LocationBounds) model.Slot {
	bounds = bounds.WithDefaults()
	return model.Slot{
		Rack:  1 + randomIntn(bounds.Racks),
		Shelf: 1 + randomIntn(bounds.Shelves),
		Bin:   1 + randomIntn(bounds.Bins),
	}
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
