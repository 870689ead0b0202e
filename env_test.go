package qliic

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("QLIIC_TEST_SET", "value")
	t.Setenv("QLIIC_TEST_EMPTY", "")
	if v := GetEnv("QLIIC_TEST_SET", "default"); v != "value" {
		t.Error("Expected value, got", v)
	}
	if v := GetEnv("QLIIC_TEST_EMPTY", "default"); v != "" {
		t.Error("Expected empty, got", v)
	}
	if v := GetEnv("QLIIC_TEST_UNSET", "default"); v != "default" {
		t.Error("Expected default, got", v)
	}
}
