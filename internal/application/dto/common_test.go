package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name          string
		in            dto.PageRequest
		limit, offset int
	}{
		{"vacío usa el default", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"negativos", dto.PageRequest{Limit: -5, Offset: -3}, dto.DefaultPageLimit, 0},
		{"sobre el máximo", dto.PageRequest{Limit: 500, Offset: 40}, dto.MaxPageLimit, 40},
		{"válido intacto", dto.PageRequest{Limit: 7, Offset: 14}, 7, 14},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Normalize()
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.offset, p.Offset)
		})
	}
}
