package command

import "github.com/drivedash/drivedash/options"

const optionNameNotifier = "notifier"

// WithNotifier sets the consumer that receives every command's notification.
func WithNotifier(n Notifier) options.Option[Commander] {
	return &notifierOpt{notifier: n}
}

type notifierOpt struct {
	notifier Notifier
}

func (o *notifierOpt) Apply(c *Commander) {
	if o.notifier != nil {
		c.notifier = o.notifier
	}
}

func (o *notifierOpt) OptionName() string {
	return optionNameNotifier
}
