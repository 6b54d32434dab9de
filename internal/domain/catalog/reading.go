package catalog

// Loan describes the member's current loan shown in the Currently Reading card.
type Loan struct {
	Book        Book
	DueInDays   int
	OverdueFine string
}

// CurrentlyReadingPlaceholder is the static loan rendered until loans are sourced from the store.
var CurrentlyReadingPlaceholder = Loan{
	Book: Book{
		ID:      "placeholder-current",
		Title:   "Harry Potter and the Order of the Phoenix",
		Authors: []string{"Stephen King"},
		Genre:   "Mystery",
		Year:    "2016",
	},
	DueInDays:   10,
	OverdueFine: "$0",
}
