package stages

import (
	"fmt"
	"strings"

	"finetune-sim/internal/sim/seedrand"
)

// SampleRow is one synthetic conversation in the downloadable sample.
type SampleRow struct {
	ID       string `json:"id"`
	Persona  string `json:"persona"`
	Intent   string `json:"intent"`
	Customer string `json:"customer"`
	Agent    string `json:"agent"`
}

// SampleColumns is the CSV header of the synthetic sample.
var SampleColumns = []string{"id", "persona", "intent", "customer", "agent"}

type sampleIntent struct {
	name      string
	customer  []string
	responses []string
}

var sampleIntents = []sampleIntent{
	{
		name:      "track_order",
		customer:  []string{"Where is my order?", "My package still hasn't arrived.", "Can you tell me when order %s ships?"},
		responses: []string{"I can help with that. Could you share your order ID so I can check the delivery status?"},
	},
	{
		name:      "track_refund",
		customer:  []string{"I want to check my refund.", "Has my refund for %s gone through?"},
		responses: []string{"Thanks for reaching out. Please provide your refund case ID and I'll look up its status."},
	},
	{
		name:      "change_delivery_address",
		customer:  []string{"I need to change where order %s is delivered.", "Can I update my shipping address?"},
		responses: []string{"Of course. If the order hasn't shipped yet I can update the address. What is the new address?"},
	},
	{
		name:      "cancel_order",
		customer:  []string{"Please cancel order %s.", "I ordered the wrong size, can I cancel?"},
		responses: []string{"I'm sorry to hear that. Let me check whether order cancellation is still possible."},
	},
	{
		name:      "product_inquiry",
		customer:  []string{"Is this jacket waterproof?", "Does item %s come in blue?"},
		responses: []string{"Good question. Let me pull up the product details for you."},
	},
	{
		name:      "payment_issue",
		customer:  []string{"I was charged twice for %s.", "My card was declined at checkout."},
		responses: []string{"I apologize for the trouble. I'll review the payment records on your account right away."},
	},
}

// SyntheticSamples draws n sample rows from seed. The same seed always
// yields the same rows.
func SyntheticSamples(seed uint32, n int) []SampleRow {
	rng := seedrand.New(seed)
	rows := make([]SampleRow, 0, max(n, 0))
	for i := 0; i < n; i++ {
		in := sampleIntents[rng.Intn(len(sampleIntents))]
		persona := SamplePersonas[rng.Intn(len(SamplePersonas))]
		customer := in.customer[rng.Intn(len(in.customer))]
		ref := fmt.Sprintf("#%d", 100000+rng.Intn(900000))
		rows = append(rows, SampleRow{
			ID:       fmt.Sprintf("sample_%05d", i+1),
			Persona:  persona,
			Intent:   in.name,
			Customer: strings.Replace(customer, "%s", ref, 1),
			Agent:    in.responses[rng.Intn(len(in.responses))],
		})
	}
	return rows
}

// Record returns the row as CSV fields in SampleColumns order.
func (r SampleRow) Record() []string {
	return []string{r.ID, r.Persona, r.Intent, r.Customer, r.Agent}
}
