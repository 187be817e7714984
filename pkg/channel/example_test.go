package channel_test

import (
	"os"

	"github.com/selectdb/feed_observer/pkg/channel"
)

func Example() {
	techDaily := channel.New("TechDaily")

	alice := channel.NewSubscriber("Alice", os.Stdout)
	bob := channel.NewSubscriber("Bob", os.Stdout)
	charlie := channel.NewSubscriber("Charlie", os.Stdout)

	techDaily.Subscribe(alice)
	techDaily.Subscribe(bob)
	if err := techDaily.Upload("Observer Pattern Explained"); err != nil {
		panic(err)
	}

	techDaily.Subscribe(charlie)
	techDaily.Unsubscribe(bob)
	if err := techDaily.Upload("Go Design Patterns Tutorial"); err != nil {
		panic(err)
	}

	// Output:
	// Hey Alice, TechDaily just uploaded 'Observer Pattern Explained'!
	// Hey Bob, TechDaily just uploaded 'Observer Pattern Explained'!
	// Hey Alice, TechDaily just uploaded 'Go Design Patterns Tutorial'!
	// Hey Charlie, TechDaily just uploaded 'Go Design Patterns Tutorial'!
}
