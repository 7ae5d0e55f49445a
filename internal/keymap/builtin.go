package keymap

// Commands understood by the terminal UI.
const (
	PrevScreen          = "previous screen"
	TopScreen           = "top screen"
	Help                = "help"
	Quit                = "quit"
	ChangeSearch        = "change search"
	RefineChangeSearch  = "refine change search"
	ListHeld            = "list held changes"
	RedrawScreen        = "redraw screen"
	CursorUp            = "cursor up"
	CursorDown          = "cursor down"
	CursorLeft          = "cursor left"
	CursorRight         = "cursor right"
	CursorPageUp        = "cursor page up"
	CursorPageDown      = "cursor page down"
	CursorMaxLeft       = "cursor max left"
	CursorMaxRight      = "cursor max right"
	Kill                = "kill"
	Yank                = "yank"
	ToggleSubscribed    = "toggle subscribed"
	ToggleReviewed      = "toggle reviewed"
	ToggleHidden        = "toggle hidden"
	ToggleStarred       = "toggle starred"
	ToggleHeld          = "toggle held"
	ToggleMark          = "toggle process mark"
	ToggleListReviewed  = "toggle list reviewed"
	ToggleListSubscribe = "toggle list subscribed"
	ToggleHideComments  = "toggle hide comments"
	Review              = "review"
	Diff                = "diff"
	LocalCheckout       = "local checkout"
	LocalCherryPick     = "local cherry pick"
	SearchResults       = "search results"
	NextChange          = "next change"
	PrevChange          = "previous change"
	Abandon             = "abandon change"
	Restore             = "restore change"
	Rebase              = "rebase change"
	EditTopic           = "edit topic"
	EditCommitMessage   = "edit commit message"
	Refresh             = "refresh"
	SortByNumber        = "sort by number"
	SortByUpdated       = "sort by updated"
	SortByReverse       = "reverse the sort"
	InteractiveSearch   = "interactive search"
	ToggleContext       = "toggle context"
	NewProjectTopic     = "new project topic"
)

// defaultBindings is the base keymap. A string binds one key; a list holds
// alternative keys; a nested list is a multi-key sequence.
var defaultBindings = map[string][]Sequence{
	PrevScreen:          {{"esc"}},
	TopScreen:           {{"meta home"}},
	Help:                {{"f1"}, {"?"}},
	Quit:                {{"ctrl q"}},
	ChangeSearch:        {{"ctrl o"}},
	RefineChangeSearch:  {{"meta o"}},
	ListHeld:            {{"f12"}},
	RedrawScreen:        {{"ctrl l"}},
	CursorUp:            {{"up"}},
	CursorDown:          {{"down"}},
	CursorLeft:          {{"left"}},
	CursorRight:         {{"right"}},
	CursorPageUp:        {{"page up"}},
	CursorPageDown:      {{"page down"}},
	CursorMaxLeft:       {{"home"}, {"ctrl a"}},
	CursorMaxRight:      {{"end"}, {"ctrl e"}},
	Kill:                {{"ctrl k"}},
	Yank:                {{"ctrl y"}},
	ToggleSubscribed:    {{"s"}},
	ToggleReviewed:      {{"v"}},
	ToggleHidden:        {{"k"}},
	ToggleStarred:       {{"*"}},
	ToggleHeld:          {{"!"}},
	ToggleMark:          {{"%"}},
	ToggleListReviewed:  {{"l"}},
	ToggleListSubscribe: {{"L"}},
	ToggleHideComments:  {{"t"}},
	Review:              {{"r"}},
	Diff:                {{"d"}},
	LocalCheckout:       {{"c"}},
	LocalCherryPick:     {{"x"}},
	SearchResults:       {{"u"}},
	NextChange:          {{"n"}},
	PrevChange:          {{"p"}},
	Abandon:             {{"ctrl a"}},
	Restore:             {{"ctrl e"}},
	Rebase:              {{"ctrl b"}},
	EditTopic:           {{"ctrl t"}},
	EditCommitMessage:   {{"ctrl d"}},
	Refresh:             {{"ctrl r"}},
	SortByNumber:        {{"n"}},
	SortByUpdated:       {{"u"}},
	SortByReverse:       {{"R"}},
	InteractiveSearch:   {{"ctrl s"}},
	ToggleContext:       {{"c"}},
	NewProjectTopic:     {{"T"}},
}

// viBindings is a delta over defaultBindings with vi-style movement.
var viBindings = map[string][]Sequence{
	Quit:               {{":", "q"}},
	CursorLeft:         {{"h"}, {"left"}},
	CursorDown:         {{"j"}, {"down"}},
	CursorUp:           {{"k"}, {"up"}},
	CursorRight:        {{"l"}, {"right"}},
	CursorPageDown:     {{"ctrl d"}, {"page down"}},
	CursorPageUp:       {{"ctrl u"}, {"page up"}},
	CursorMaxLeft:      {{"0"}, {"home"}},
	CursorMaxRight:     {{"$"}, {"end"}},
	ToggleHidden:       {{"K"}},
	ToggleListReviewed: {{"ctrl l"}},
	RedrawScreen:       {{"ctrl r"}},
	Refresh:            {{"ctrl f"}},
}
