package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.LLM.Endpoint = "http://localhost:8080"
		cfg.SetDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "missing listen", modify: func(cfg *Config) { cfg.Server.Listen = "" }, wantErr: "server.listen is required"},
		{name: "missing timeout", modify: func(cfg *Config) { cfg.Server.Timeout = 0 }, wantErr: "server.timeout is required"},
		{name: "missing endpoint", modify: func(cfg *Config) { cfg.LLM.Endpoint = "" }, wantErr: "llm.endpoint is required"},
		{name: "missing model", modify: func(cfg *Config) { cfg.LLM.Model = "" }, wantErr: "llm.model is required"},
		{name: "unknown driver", modify: func(cfg *Config) { cfg.Database.Driver = "mysql" }, wantErr: "database.driver must be one of"},
		{name: "unknown timespan", modify: func(cfg *Config) { cfg.Report.Timespan = "daily" }, wantErr: "report.timespan must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var doc schemaDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Config", defName(doc.Ref))

	llm, ok := doc.Defs["LLMConfig"]
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"endpoint", "model"}, llm.Required)

	for _, name := range []string{"ServerConfig", "DatabaseConfig", "SteamConfig", "YouTubeConfig", "ReportConfig"} {
		_, ok := doc.Defs[name]
		assert.True(t, ok, "definition %s", name)
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	var embedded schemaDoc
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	data, err := json.Marshal(GenerateSchema())
	require.NoError(t, err)
	var generated schemaDoc
	require.NoError(t, json.Unmarshal(data, &generated))

	for name, def := range generated.Defs {
		emb, ok := embedded.Defs[name]
		require.True(t, ok, "embedded schema is stale, missing %s, run go generate", name)
		assert.Len(t, emb.Properties, len(def.Properties), "properties of %s", name)
		assert.ElementsMatch(t, def.Required, emb.Required, "required of %s", name)
	}
}
