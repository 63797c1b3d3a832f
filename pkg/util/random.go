package util

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber builds a human-readable order number like
// ORD-20260831-48213. Uniqueness is enforced by the orders table index;
// the random suffix just keeps same-second collisions unlikely.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), rand.Intn(100000))
}
