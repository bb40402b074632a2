// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minevale/api/pkg/slug"
)

/*
TestFrom covers the slug pipeline against typical pt-BR titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Atualizacao de Natal", "atualizacao-de-natal"},
		{"accents", "Atualização de Natal", "atualizacao-de-natal"},
		{"cedilla_and_tilde", "Promoção: VIPs com 50% de desconto!", "promocao-vips-com-50-de-desconto"},
		{"punctuation_runs", "Como -- resetar...a senha?", "como-resetar-a-senha"},
		{"leading_trailing", "  ola mundo  ", "ola-mundo"},
		{"digits", "Temporada 2 começa dia 10", "temporada-2-comeca-dia-10"},
		{"already_slug", "ja-e-um-slug", "ja-e-um-slug"},
		{"empty", "", ""},
		{"symbols_only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
