package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestUserIDAnonymousIsNil(t *testing.T) {
	if got := UserID(context.Background()); got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}

func TestRequestDataRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id, SessionID: uuid.New()})
	if got := UserID(ctx); got != id {
		t.Fatalf("got %s want %s", got, id)
	}
	ctx = WithTraceData(ctx, &TraceData{TraceID: "t", RequestID: "r"})
	if td := GetTraceData(ctx); td == nil || td.TraceID != "t" {
		t.Fatalf("trace data lost: %+v", td)
	}
}
