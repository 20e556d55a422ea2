package config

import (
	"fmt"

	"github.com/grovetools/ccsessions/errors"
	"github.com/moby/patternmatcher"
)

// Validate checks field values and exclude pattern syntax.
func (c *Config) Validate() error {
	switch c.Window {
	case WindowRecent, WindowAll:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("window must be %q or %q, got %q", WindowRecent, WindowAll, c.Window)).
			WithDetail("field", "window")
	}

	switch c.Sort {
	case SortRecency, SortMessages:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("sort must be %q or %q, got %q", SortRecency, SortMessages, c.Sort)).
			WithDetail("field", "sort")
	}

	if c.Workers < 0 {
		return errors.ConfigInvalid("workers must not be negative").WithDetail("field", "workers")
	}

	if len(c.Exclude) > 0 {
		if _, err := patternmatcher.New(c.Exclude); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid exclude pattern").
				WithDetail("field", "exclude")
		}
	}

	return nil
}
