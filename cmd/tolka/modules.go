package main

// Blank imports register every compiled-in module with the core registry.
import (
	_ "github.com/tolkabot/tolka/internal/cron"
	_ "github.com/tolkabot/tolka/internal/gateway"
	_ "github.com/tolkabot/tolka/internal/tracing"
	_ "github.com/tolkabot/tolka/internal/translator"
	_ "github.com/tolkabot/tolka/modules/channel/telegram"
	_ "github.com/tolkabot/tolka/modules/prefs/sqlite"
	_ "github.com/tolkabot/tolka/modules/provider/openai"
)
