package pool

import "testing"

func TestResolveSingleTopic(t *testing.T) {
	questions := Resolve([]string{TopicRust})
	if len(questions) == 0 {
		t.Fatal("Resolve() returned no questions for a known topic")
	}
	for _, q := range questions {
		if q.Topic != TopicRust {
			t.Fatalf("question %q has topic %s, want %s", q.Text, q.Topic, TopicRust)
		}
	}
}

func TestResolveUnionsTopics(t *testing.T) {
	java := Resolve([]string{TopicJava})
	kotlin := Resolve([]string{TopicKotlin})
	both := Resolve([]string{TopicJava, TopicKotlin})

	if len(both) != len(java)+len(kotlin) {
		t.Fatalf("union size = %d, want %d", len(both), len(java)+len(kotlin))
	}
}

func TestResolveDeduplicatesSelection(t *testing.T) {
	once := Resolve([]string{TopicJava})
	twice := Resolve([]string{TopicJava, TopicJava})

	if len(twice) != len(once) {
		t.Fatalf("duplicate selection yielded %d questions, want %d", len(twice), len(once))
	}
}

func TestResolveIgnoresUnknownTopics(t *testing.T) {
	if got := Resolve([]string{"History"}); len(got) != 0 {
		t.Fatalf("unknown topic yielded %d questions, want 0", len(got))
	}
	known := Resolve([]string{TopicRust})
	mixed := Resolve([]string{TopicRust, "History"})
	if len(mixed) != len(known) {
		t.Fatalf("mixed selection yielded %d questions, want %d", len(mixed), len(known))
	}
}

func TestResolveOrderIsStable(t *testing.T) {
	a := Resolve([]string{TopicKotlin, TopicJava})
	b := Resolve([]string{TopicJava, TopicKotlin})

	if len(a) != len(b) {
		t.Fatalf("selections differ in size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			t.Fatalf("question order differs at %d: %q vs %q", i, a[i].Text, b[i].Text)
		}
	}
}

func TestTopicsHaveQuestions(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("no topics registered")
	}
	for _, topic := range topics {
		if len(Resolve([]string{topic})) == 0 {
			t.Fatalf("topic %s has no questions", topic)
		}
	}

	// Every question must carry four filled options and a valid answer.
	for _, q := range Resolve(topics) {
		for i, opt := range q.Options {
			if opt == "" {
				t.Fatalf("question %q has empty option %d", q.Text, i)
			}
		}
		if q.CorrectOption < 1 || q.CorrectOption > 4 {
			t.Fatalf("question %q has out-of-range answer %d", q.Text, q.CorrectOption)
		}
	}
}
