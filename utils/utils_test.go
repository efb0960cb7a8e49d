package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	config, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, config.TablaTransaccion)
	assert.NotEmpty(t, config.TablaComercio)
	assert.NotEmpty(t, config.TablaComerciosAgreg)
	assert.NotEmpty(t, config.AppPort)
	assert.NotEmpty(t, config.BasePath)
	assert.NotEmpty(t, config.LogLevel)
}

func TestPrintPrettyJSON(t *testing.T) {
	out := PrintPrettyJSON(map[string]interface{}{"ok": true, "msg": "hola"})

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, true, parsed["ok"])
	assert.Equal(t, "hola", parsed["msg"])
}
