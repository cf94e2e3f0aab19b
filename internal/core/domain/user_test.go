package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/storefront/internal/core/domain"
)

func TestRole_JSONNullIsNone(t *testing.T) {
	raw, err := json.Marshal(domain.Identity{Username: "alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice","email":"","address":"","role":null}`, string(raw))

	var id domain.Identity
	require.NoError(t, json.Unmarshal([]byte(`{"username":"bob","role":null}`), &id))
	assert.Equal(t, domain.RoleNone, id.Role)

	require.NoError(t, json.Unmarshal([]byte(`{"username":"bob"}`), &id))
	assert.Equal(t, domain.RoleNone, id.Role)
}

func TestRole_UnknownTagIsPreserved(t *testing.T) {
	var id domain.Identity
	require.NoError(t, json.Unmarshal([]byte(`{"username":"x","role":"superuser"}`), &id))
	assert.Equal(t, domain.Role("superuser"), id.Role)
	assert.False(t, id.Role.Known())
}

func TestDecodeIdentity(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"username":"alice","email":"a@example.com","address":"x","role":"customer"}`, false},
		{"valid null role", `{"username":"alice","role":null}`, false},
		{"not json", `{{`, true},
		{"json null", `null`, true},
		{"array", `[1,2]`, true},
		{"blank username", `{"username":"  ","role":"admin"}`, true},
		{"role wrong type", `{"username":"alice","role":7}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := domain.DecodeIdentity([]byte(tt.raw))
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrMalformedSession))
				assert.Nil(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", id.Username)
		})
	}
}

func TestEncodeDecodeIdentity_PreservesAllFields(t *testing.T) {
	in := &domain.Identity{Username: "alice", Email: "a@example.com", Address: "1 Main St", Role: domain.RoleAdmin}
	raw, err := domain.EncodeIdentity(in)
	require.NoError(t, err)

	out, err := domain.DecodeIdentity(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRegistrationRequest_SignupDropsConfirmation(t *testing.T) {
	req := domain.RegistrationRequest{
		Username:             "alice",
		Email:                "a@example.com",
		Password:             "pw",
		PasswordConfirmation: "pw",
		Address:              "1 Main St",
	}
	raw, err := json.Marshal(req.Signup())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "confirmation")
	assert.JSONEq(t, `{"username":"alice","email":"a@example.com","password":"pw","address":"1 Main St"}`, string(raw))
}

func TestHomeFor(t *testing.T) {
	view, ok := domain.HomeFor(domain.RoleCustomer)
	assert.True(t, ok)
	assert.Equal(t, domain.ViewCustomerHome, view)

	view, ok = domain.HomeFor(domain.RoleAdmin)
	assert.True(t, ok)
	assert.Equal(t, domain.ViewAdminHome, view)

	_, ok = domain.HomeFor(domain.RoleNone)
	assert.False(t, ok)
	_, ok = domain.HomeFor(domain.Role("superuser"))
	assert.False(t, ok)
}

func TestAuthError_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := error(domain.NewAuthError(domain.ErrTransportFailure, "try again", cause))

	assert.True(t, errors.Is(err, domain.ErrTransportFailure))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.Equal(t, "try again", err.Error())

	ae, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrTransportFailure, ae.Kind)
}
