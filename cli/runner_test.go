package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthlink/fhir/client/auth/mock"
)

func TestRun(t *testing.T) {
	smart, err := mock.NewHTTPTestSmartServer()
	if err != nil {
		t.Fatalf("failed to create mock server: %v", err)
	}
	defer smart.Close()

	var out bytes.Buffer
	err = run([]string{"-u", smart.Issuer, "-o", "everything"}, &out)
	assert.Nil(t, err)

	report := out.String()
	assert.Contains(t, report, smart.ServerName)
	assert.Contains(t, report, "4.0.1")
	assert.Contains(t, report, "everything")
	assert.Contains(t, report, "authorization_code")
}

func TestRun_UnknownOperation(t *testing.T) {
	smart, err := mock.NewHTTPTestSmartServer()
	if err != nil {
		t.Fatalf("failed to create mock server: %v", err)
	}
	defer smart.Close()

	var out bytes.Buffer
	err = run([]string{"-u", smart.Issuer, "-o", "does-not-exist"}, &out)
	assert.NotNil(t, err)
}
