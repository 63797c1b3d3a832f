package controller

import (
	"context"
	"strconv"
)

func testCtx() context.Context {
	return context.Background()
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
