package credit

import (
	"fmt"

	"github.com/Enthunya/mekgoro-tbos/internal/finance"
	"github.com/Enthunya/mekgoro-tbos/internal/phone"
)

// Notifier prepares the message that asks a customer to settle up.
type Notifier interface {
	ReminderLink(shopName string, c Customer) (string, error)
}

type whatsAppNotifier struct{ region string }

// NewWhatsAppNotifier builds wa.me links, reading local numbers as region.
func NewWhatsAppNotifier(region string) Notifier {
	return &whatsAppNotifier{region: region}
}

func (n *whatsAppNotifier) ReminderLink(shopName string, c Customer) (string, error) {
	text := fmt.Sprintf("Hi %s, a friendly reminder from %s: %s is still outstanding on your account. Thank you!",
		c.Name, shopName, finance.Rand(c.Owed))
	return phone.WhatsAppLink(c.Phone, n.region, text)
}
