// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestRunIDCtxKey(t *testing.T) {
	if RunIDCtxKey.String() != "runID" {
		t.Errorf("expected 'runID', got '%s'", RunIDCtxKey.String())
	}
}

func TestGetRunIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), RunIDCtxKey, "run-42")

	runID, ok := GetRunIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if runID != "run-42" {
		t.Errorf("expected runID='run-42', got '%s'", runID)
	}
}

func TestGetRunIDFromContext_Missing(t *testing.T) {
	ctx := context.Background()

	runID, ok := GetRunIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if runID != "" {
		t.Errorf("expected empty runID, got '%s'", runID)
	}
}

func TestGetRunIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), RunIDCtxKey, 12345)

	runID, ok := GetRunIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
	if runID != "" {
		t.Errorf("expected empty runID, got '%s'", runID)
	}
}

func TestGetRunIDFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, "run-99")

	runID, ok := GetRunIDFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
	if runID != "" {
		t.Errorf("expected empty runID, got '%s'", runID)
	}
}
