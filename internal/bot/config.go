package bot

import "fmt"

type Config struct {
	Token    string
	AdminIDs []int64
	Debug    bool
}

func (c Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("bot token is not set, use bot.token or EXAMDESK_BOT_TOKEN")
	}
	return nil
}
