package clientcfg

// configSchemaJSON is the JSON Schema for .sheetdeck.yaml.
const configSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "SheetDeck client configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "server_url": {
      "type": "string",
      "pattern": "^https?://"
    },
    "poll_interval": {
      "type": "integer",
      "minimum": 1
    },
    "poll_max_attempts": {
      "type": "integer",
      "minimum": 0
    },
    "download_dir": {
      "type": "string",
      "minLength": 1
    },
    "log_limit": {
      "type": "integer",
      "minimum": 1
    }
  }
}`
