package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"bigbang-server/internal/shared/errors"
)

func TestGenerationCarriesOperation(t *testing.T) {
	cause := stderrors.New("source closed")
	err := fmt.Errorf("simulation: %w", errors.Generation("generate_particles", cause))

	require.Equal(t, errors.ErrorTypeGeneration, errors.GetType(err))
	require.Equal(t, "generate_particles", errors.GetOp(err))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "generate_particles: generation failed: source closed")
}

func TestGetTypeDefaultsToInternal(t *testing.T) {
	require.Equal(t, errors.ErrorTypeInternal, errors.GetType(stderrors.New("plain")))
	require.Empty(t, errors.GetOp(stderrors.New("plain")))
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err  error
		want errors.ErrorType
		msg  string
	}{
		{errors.Validation("bad"), errors.ErrorTypeValidation, "bad"},
		{errors.Validationf("count %d", 3), errors.ErrorTypeValidation, "count 3"},
		{errors.WrapValidation("bad json", stderrors.New("eof")), errors.ErrorTypeValidation, "bad json: eof"},
		{errors.Unauthorized("no token"), errors.ErrorTypeUnauthorized, "no token"},
		{errors.Forbidden("operators only"), errors.ErrorTypeForbidden, "operators only"},
		{errors.MethodNotAllowed("PUT"), errors.ErrorTypeMethodNotAllowed, "method PUT not allowed"},
		{errors.External("db disabled"), errors.ErrorTypeExternal, "db disabled"},
		{errors.RateLimited("slow down"), errors.ErrorTypeRateLimited, "slow down"},
		{errors.WrapExternal("cache_get", stderrors.New("timeout")), errors.ErrorTypeExternal, "cache_get: dependency failed: timeout"},
		{errors.WrapInternal("boom", stderrors.New("x")), errors.ErrorTypeInternal, "boom: x"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, errors.GetType(tc.err))
		require.Equal(t, tc.msg, tc.err.Error())
	}
}
