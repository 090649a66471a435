package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
)

type fakeStoryRepo struct {
	story    *entity.Story
	synopsis string
}

func (f *fakeStoryRepo) Create(_ context.Context, s *entity.Story) error { f.story = s; return nil }

func (f *fakeStoryRepo) GetByID(_ context.Context, id string) (*entity.Story, error) {
	if f.story == nil || f.story.ID != id {
		return nil, errors.New("story not found")
	}
	return f.story, nil
}

func (f *fakeStoryRepo) UpdateSynopsis(_ context.Context, _, synopsis string) error {
	f.synopsis = synopsis
	return nil
}

type fakeCharacterRepo struct {
	created   []*entity.Character
	vectorIDs map[string]string
	failNames map[string]bool
}

func (f *fakeCharacterRepo) Create(_ context.Context, c *entity.Character) error {
	if f.failNames[c.Name] {
		return errors.New("insert failed")
	}
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCharacterRepo) GetByID(_ context.Context, _ string) (*entity.Character, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCharacterRepo) ListByStory(_ context.Context, _ string, _ *repository.CharacterFilter, _ repository.Pagination) (*repository.PagedResult[*entity.Character], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCharacterRepo) ExistsByName(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeCharacterRepo) UpdateVectorID(_ context.Context, id, vectorID string) error {
	if f.vectorIDs == nil {
		f.vectorIDs = map[string]string{}
	}
	f.vectorIDs[id] = vectorID
	return nil
}

type fakeLocationRepo struct {
	created []*entity.Location
	fail    bool
}

func (f *fakeLocationRepo) Create(_ context.Context, l *entity.Location) error {
	if f.fail {
		return errors.New("insert failed")
	}
	f.created = append(f.created, l)
	return nil
}

func (f *fakeLocationRepo) ListByStory(_ context.Context, _ string) ([]*entity.Location, error) {
	return f.created, nil
}

type fakeItemRepo struct{ created []*entity.Item }

func (f *fakeItemRepo) Create(_ context.Context, i *entity.Item) error {
	f.created = append(f.created, i)
	return nil
}

func (f *fakeItemRepo) ListByStory(_ context.Context, _ string) ([]*entity.Item, error) {
	return f.created, nil
}

type fakeEventRepo struct{ created []*entity.Event }

func (f *fakeEventRepo) Create(_ context.Context, e *entity.Event) error {
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEventRepo) ListByStory(_ context.Context, _ string) ([]*entity.Event, error) {
	return f.created, nil
}

type fakeSceneRepo struct{ created []*entity.Scene }

func (f *fakeSceneRepo) Create(_ context.Context, s *entity.Scene) error {
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSceneRepo) ListByStory(_ context.Context, _ string) ([]*entity.Scene, error) {
	return f.created, nil
}

type fakePlotlineRepo struct{ created []*entity.Plotline }

func (f *fakePlotlineRepo) Create(_ context.Context, p *entity.Plotline) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakePlotlineRepo) ListByStory(_ context.Context, _ string) ([]*entity.Plotline, error) {
	return f.created, nil
}

type fakeRelationshipRepo struct{ created []*entity.CharacterRelationship }

func (f *fakeRelationshipRepo) Create(_ context.Context, r *entity.CharacterRelationship) error {
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRelationshipRepo) ListByStory(_ context.Context, _ string) ([]*entity.CharacterRelationship, error) {
	return f.created, nil
}

type fakeDependencyRepo struct{ created []*entity.EventDependency }

func (f *fakeDependencyRepo) Create(_ context.Context, d *entity.EventDependency) error {
	f.created = append(f.created, d)
	return nil
}

func (f *fakeDependencyRepo) ListByStory(_ context.Context, _ string) ([]*entity.EventDependency, error) {
	return f.created, nil
}

type fakeArcRepo struct{ created []*entity.CharacterArc }

func (f *fakeArcRepo) Create(_ context.Context, a *entity.CharacterArc) error {
	f.created = append(f.created, a)
	return nil
}

func (f *fakeArcRepo) ListByStory(_ context.Context, _ string) ([]*entity.CharacterArc, error) {
	return f.created, nil
}

type fakeEmbedder struct {
	calls [][]string
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls = append(f.calls, texts)
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{float32(i), 1}
	}
	return vectors, nil
}

type fakeIndexer struct {
	profiles []*CharacterProfile
	err      error
}

func (f *fakeIndexer) InsertCharacterProfiles(_ context.Context, _ string, profiles []*CharacterProfile) error {
	if f.err != nil {
		return f.err
	}
	f.profiles = append(f.profiles, profiles...)
	return nil
}

type fixture struct {
	story        *fakeStoryRepo
	character    *fakeCharacterRepo
	location     *fakeLocationRepo
	item         *fakeItemRepo
	event        *fakeEventRepo
	scene        *fakeSceneRepo
	plotline     *fakePlotlineRepo
	relationship *fakeRelationshipRepo
	dependency   *fakeDependencyRepo
	arc          *fakeArcRepo
}

func newFixture() *fixture {
	story := entity.NewStory("Test Story", "world-1")
	story.ID = "story-1"
	return &fixture{
		story:        &fakeStoryRepo{story: story},
		character:    &fakeCharacterRepo{},
		location:     &fakeLocationRepo{},
		item:         &fakeItemRepo{},
		event:        &fakeEventRepo{},
		scene:        &fakeSceneRepo{},
		plotline:     &fakePlotlineRepo{},
		relationship: &fakeRelationshipRepo{},
		dependency:   &fakeDependencyRepo{},
		arc:          &fakeArcRepo{},
	}
}

func (f *fixture) repos() Repositories {
	return Repositories{
		Story:        f.story,
		Character:    f.character,
		Location:     f.location,
		Item:         f.item,
		Event:        f.event,
		Scene:        f.scene,
		Plotline:     f.plotline,
		Relationship: f.relationship,
		Dependency:   f.dependency,
		Arc:          f.arc,
	}
}

func sampleResult() *entity.ExtractionResult {
	result := entity.NewExtractionResult("novel")

	alice := entity.NewCharacter("Alice", entity.RoleProtagonist, 0.9)
	alice.Description = "A determined explorer."
	bob := entity.NewCharacter("Bob", entity.RoleSupporting, 0.7)
	result.Characters = append(result.Characters, alice, bob)

	result.Locations = append(result.Locations, entity.NewLocation("Castle", entity.LocationBuilding, 0.7))
	result.Items = append(result.Items, entity.NewItem("sword", entity.ItemWeapon, 0.6))

	first := entity.NewEvent("alice finds the map", 1, 0.65)
	first.AddParticipant("Alice", 8)
	second := entity.NewEvent("bob joins the quest", 2, 0.65)
	second.AddParticipant("Bob", 5)
	result.Events = append(result.Events, first, second)

	result.Plotlines = append(result.Plotlines, entity.NewPlotline("Alice's Journey", entity.PlotlineMain, 0.6))

	rel := entity.NewCharacterRelationship("Alice", "Bob", entity.RelationshipFriend, 1)
	result.CharacterRelationships = append(result.CharacterRelationships, rel)

	result.EventDependencies = append(result.EventDependencies,
		entity.NewEventDependency(1, 2, `"alice finds the map" happens before "bob joins the quest".`))

	arc := entity.NewCharacterArc("Alice", "Alice's Arc")
	result.CharacterArcs = append(result.CharacterArcs, arc)

	result.Synopsis = "A story about Alice and Bob."
	return result
}

func TestImportWiresCrossReferences(t *testing.T) {
	f := newFixture()
	svc := NewService(f.repos(), nil, nil)

	summary, err := svc.Import(context.Background(), "story-1", sampleResult())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if summary.TotalFailed() != 0 {
		t.Fatalf("expected no failures, got %d", summary.TotalFailed())
	}

	if len(f.character.created) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(f.character.created))
	}
	aliceID := f.character.created[0].ID
	if aliceID == "" {
		t.Fatal("expected character ID to be assigned")
	}

	if len(f.event.created) != 2 {
		t.Fatalf("expected 2 events, got %d", len(f.event.created))
	}
	if got := f.event.created[0].Participants[0].CharacterID; got != aliceID {
		t.Errorf("event participant ID = %q, want %q", got, aliceID)
	}

	rel := f.relationship.created[0]
	if rel.Character1ID != aliceID {
		t.Errorf("relationship Character1ID = %q, want %q", rel.Character1ID, aliceID)
	}
	if rel.Character2ID == "" || rel.Character2ID == aliceID {
		t.Errorf("relationship Character2ID = %q not wired", rel.Character2ID)
	}

	dep := f.dependency.created[0]
	if dep.PredecessorID != f.event.created[0].ID || dep.SuccessorID != f.event.created[1].ID {
		t.Errorf("dependency IDs not wired: %q -> %q", dep.PredecessorID, dep.SuccessorID)
	}

	if got := f.arc.created[0].CharacterID; got != aliceID {
		t.Errorf("arc CharacterID = %q, want %q", got, aliceID)
	}

	if f.story.synopsis != "A story about Alice and Bob." {
		t.Errorf("synopsis not updated, got %q", f.story.synopsis)
	}
	if !summary.SynopsisUpdated {
		t.Error("expected SynopsisUpdated to be true")
	}
}

func TestImportContinuesAfterEntityFailure(t *testing.T) {
	f := newFixture()
	f.location.fail = true
	f.character.failNames = map[string]bool{"Bob": true}
	svc := NewService(f.repos(), nil, nil)

	summary, err := svc.Import(context.Background(), "story-1", sampleResult())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if got := summary.Counts["location"].Failed; got != 1 {
		t.Errorf("location failed = %d, want 1", got)
	}
	if got := summary.Counts["character"]; got.Imported != 1 || got.Failed != 1 {
		t.Errorf("character counts = %+v, want 1 imported 1 failed", got)
	}

	// 后续类型照常写入
	if len(f.item.created) != 1 {
		t.Errorf("expected 1 item despite earlier failures, got %d", len(f.item.created))
	}
	if len(f.event.created) != 2 {
		t.Errorf("expected 2 events despite earlier failures, got %d", len(f.event.created))
	}

	// Bob 写入失败，引用 Bob 的外键留空
	rel := f.relationship.created[0]
	if rel.Character2ID != "" {
		t.Errorf("expected empty Character2ID for failed character, got %q", rel.Character2ID)
	}
}

func TestImportUnknownStory(t *testing.T) {
	f := newFixture()
	svc := NewService(f.repos(), nil, nil)

	if _, err := svc.Import(context.Background(), "missing", sampleResult()); err == nil {
		t.Fatal("expected error for unknown story")
	}
}

func TestImportIndexesCharacterVectors(t *testing.T) {
	f := newFixture()
	embed := &fakeEmbedder{}
	indexer := &fakeIndexer{}
	svc := NewService(f.repos(), embed, indexer)

	summary, err := svc.Import(context.Background(), "story-1", sampleResult())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if summary.VectorsIndexed != 2 {
		t.Fatalf("VectorsIndexed = %d, want 2", summary.VectorsIndexed)
	}
	if len(indexer.profiles) != 2 {
		t.Fatalf("expected 2 profiles indexed, got %d", len(indexer.profiles))
	}
	if len(embed.calls) != 1 || len(embed.calls[0]) != 2 {
		t.Fatalf("unexpected embed calls: %v", embed.calls)
	}
	if !strings.HasPrefix(embed.calls[0][0], "Alice - ") {
		t.Errorf("profile text = %q, want ASCII name-description separator", embed.calls[0][0])
	}
	if indexer.profiles[0].Name != "Alice" || indexer.profiles[0].CharacterID == "" {
		t.Errorf("unexpected first profile: %+v", indexer.profiles[0])
	}
	if len(f.character.vectorIDs) != 2 {
		t.Errorf("expected 2 vector ID updates, got %d", len(f.character.vectorIDs))
	}
}

func TestImportSurvivesEmbeddingFailure(t *testing.T) {
	f := newFixture()
	embed := &fakeEmbedder{err: errors.New("embedding service down")}
	svc := NewService(f.repos(), embed, &fakeIndexer{})

	summary, err := svc.Import(context.Background(), "story-1", sampleResult())
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if summary.VectorsIndexed != 0 {
		t.Errorf("VectorsIndexed = %d, want 0", summary.VectorsIndexed)
	}
	if summary.TotalFailed() != 0 {
		t.Errorf("embedding failure should not count as entity failure, got %d", summary.TotalFailed())
	}
}
