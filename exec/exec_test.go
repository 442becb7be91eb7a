package exec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/exec"
	"github.com/miniql/miniql/value"
)

func mustExec(t *testing.T, db *exec.Database, stmt string) *exec.Result {
	t.Helper()
	res := db.Execute(stmt)
	require.True(t, res.IsOk(), "statement %q failed: %s", stmt, res.ErrorMessage())
	return res
}

// Scenario 1: auto-increment assigns sequential IDs starting at 0.
func TestScenarioAutoIncrementSequentialInserts(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE Users (ID INT AUTOINCREMENT KEY, Name VARCHAR);`)
	mustExec(t, db, `INSERT INTO Users VALUES (NULL, "Ada");`)
	mustExec(t, db, `INSERT INTO Users VALUES (NULL, "Babbage");`)

	res := mustExec(t, db, `SELECT * FROM Users;`)
	require.Equal(t, 2, res.RowCount())
	payload := res.Payload()
	assert.Equal(t, "0", payload[0]["ID"].String())
	assert.Equal(t, "Ada", payload[0]["Name"].String())
	assert.Equal(t, "1", payload[1]["ID"].String())
	assert.Equal(t, "Babbage", payload[1]["Name"].String())
}

// Scenario 2: explicit auto-increment value advances the counter past it.
func TestScenarioExplicitAutoIncrementAdvancesCounter(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE Users (ID INT AUTOINCREMENT KEY, Name VARCHAR);`)
	mustExec(t, db, `INSERT INTO Users VALUES (10, "Turing");`)
	res := mustExec(t, db, `INSERT INTO Users VALUES (NULL, "Church");`)
	assert.Equal(t, "11", res.Payload()[0]["ID"].String())

	res = mustExec(t, db, `INSERT INTO Users VALUES (NULL, "Lovelace");`)
	assert.Equal(t, "12", res.Payload()[0]["ID"].String())
}

// Scenario 3: a unique violation rejects the second insert and leaves one row.
func TestScenarioUniqueViolation(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (X INT UNIQUE);`)
	mustExec(t, db, `INSERT INTO T VALUES (1);`)

	res := db.Execute(`INSERT INTO T VALUES (1);`)
	assert.False(t, res.IsOk())

	res = mustExec(t, db, `SELECT * FROM T;`)
	require.Equal(t, 1, res.RowCount())
	assert.Equal(t, "1", res.Payload()[0]["X"].String())
}

// Scenario 4: UPDATE with a WHERE predicate adjusts only matching rows.
func TestScenarioUpdateWithWherePredicate(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE Emp (ID INT, Salary DOUBLE);`)
	mustExec(t, db, `INSERT INTO Emp VALUES (1, 100.0);`)
	mustExec(t, db, `INSERT INTO Emp VALUES (2, 200.0);`)
	mustExec(t, db, `INSERT INTO Emp VALUES (3, 300.0);`)

	mustExec(t, db, `UPDATE Emp SET (Salary = Salary + 50.0) WHERE Salary > 150.0;`)

	res := mustExec(t, db, `SELECT Salary FROM Emp;`)
	require.Equal(t, 3, res.RowCount())
	assert.Equal(t, "100", res.Payload()[0]["Salary"].String())
	assert.Equal(t, "250", res.Payload()[1]["Salary"].String())
	assert.Equal(t, "350", res.Payload()[2]["Salary"].String())
}

// valueComparer lets cmp.Diff compare value.Value's unexported fields via
// its own equality semantics (numeric cross-case promotion included)
// instead of panicking on an unexported-field struct.
var valueComparer = cmp.Comparer(func(a, b value.Value) bool {
	eq, err := value.Equal(a, b)
	return err == nil && eq
})

func TestPayloadStructuralDiffAcrossRows(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (X INT, Y DOUBLE);`)
	mustExec(t, db, `INSERT INTO T VALUES (1, 2.0);`)
	mustExec(t, db, `INSERT INTO T VALUES (3, 4.0);`)

	res := mustExec(t, db, `SELECT * FROM T;`)
	want := []map[string]value.Value{
		{"X": value.NewInt(1), "Y": value.NewDouble(2)},
		{"X": value.NewInt(3), "Y": value.NewDouble(4)},
	}
	if diff := cmp.Diff(want, res.Payload(), valueComparer); diff != "" {
		t.Errorf("Payload mismatch (-want +got):\n%s", diff)
	}
}

// Scenario 5: SELECT ... JOIN ... ON produces the nested-loop cross product
// filtered by the join predicate, with qualified output headers.
func TestScenarioJoinSelect(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE User (ID INT, Name VARCHAR);`)
	mustExec(t, db, `CREATE TABLE Post (AuthorId INT, Text VARCHAR);`)
	mustExec(t, db, `INSERT INTO User VALUES (1, "A");`)
	mustExec(t, db, `INSERT INTO User VALUES (2, "B");`)
	mustExec(t, db, `INSERT INTO Post VALUES (1, "p1");`)
	mustExec(t, db, `INSERT INTO Post VALUES (1, "p2");`)
	mustExec(t, db, `INSERT INTO Post VALUES (2, "p3");`)

	res := mustExec(t, db, `SELECT User.Name, Post.Text FROM User JOIN Post ON User.ID == Post.AuthorId;`)
	require.Equal(t, 3, res.RowCount())
	payload := res.Payload()
	assert.Equal(t, "A", payload[0]["User.Name"].String())
	assert.Equal(t, "p1", payload[0]["Post.Text"].String())
	assert.Equal(t, "A", payload[1]["User.Name"].String())
	assert.Equal(t, "p2", payload[1]["Post.Text"].String())
	assert.Equal(t, "B", payload[2]["User.Name"].String())
	assert.Equal(t, "p3", payload[2]["Post.Text"].String())
}

// Scenario 6: CREATE INDEX on an unknown column fails with UnknownColumn.
func TestScenarioCreateIndexUnknownColumn(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (X INT);`)
	mustExec(t, db, `CREATE ORDERED INDEX ON T BY X;`)

	res := db.Execute(`CREATE UNORDERED INDEX ON T BY Y;`)
	assert.False(t, res.IsOk())
}

func TestDivisionByZeroAbortsStatementLeavesTableUnchanged(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (X INT);`)
	mustExec(t, db, `INSERT INTO T VALUES (1);`)

	res := db.Execute(`INSERT INTO T VALUES (1 / 0);`)
	assert.False(t, res.IsOk())

	res = mustExec(t, db, `SELECT * FROM T;`)
	assert.Equal(t, 1, res.RowCount())
}

func TestInsertExactSchemaLenSucceedsOneMoreFails(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (A INT, B INT);`)
	mustExec(t, db, `INSERT INTO T VALUES (1, 2);`)

	res := db.Execute(`INSERT INTO T VALUES (1, 2, 3);`)
	assert.False(t, res.IsOk())
}

func TestAutoIncrementOnNonIntRejectedAtCreateTable(t *testing.T) {
	db := exec.NewDatabase()
	res := db.Execute(`CREATE TABLE T (X VARCHAR AUTOINCREMENT);`)
	assert.False(t, res.IsOk())
}

func TestSelectStarOnFreshTableIsEmpty(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (X INT);`)
	res := mustExec(t, db, `SELECT * FROM T;`)
	assert.Equal(t, 0, res.RowCount())
}

func TestUpdateAlwaysTrueLeavesRowCountUnchangedDeleteAlwaysTrueEmptiesTable(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (X INT);`)
	mustExec(t, db, `INSERT INTO T VALUES (1);`)
	mustExec(t, db, `INSERT INTO T VALUES (2);`)

	mustExec(t, db, `UPDATE T SET (X = X + 1) WHERE X == X;`)
	res := mustExec(t, db, `SELECT * FROM T;`)
	assert.Equal(t, 2, res.RowCount())

	mustExec(t, db, `DELETE FROM T WHERE X == X;`)
	res = mustExec(t, db, `SELECT * FROM T;`)
	assert.Equal(t, 0, res.RowCount())
}

func TestUpdateProtectedColumnRejected(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (ID INT AUTOINCREMENT KEY, Name VARCHAR);`)
	mustExec(t, db, `INSERT INTO T VALUES (NULL, "A");`)

	res := db.Execute(`UPDATE T SET (ID = ID + 1);`)
	assert.False(t, res.IsOk())
}

func TestUnknownTableAndColumnErrors(t *testing.T) {
	db := exec.NewDatabase()
	res := db.Execute(`SELECT * FROM Nope;`)
	assert.False(t, res.IsOk())

	mustExec(t, db, `CREATE TABLE T (X INT);`)
	res = db.Execute(`SELECT Bogus FROM T;`)
	assert.False(t, res.IsOk())
}

func TestTableExistsOnDuplicateCreate(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (X INT);`)
	res := db.Execute(`CREATE TABLE T (X INT);`)
	assert.False(t, res.IsOk())
}

func TestNamedInsertUsesDefaultsAndAutoIncrementFallback(t *testing.T) {
	db := exec.NewDatabase()
	mustExec(t, db, `CREATE TABLE T (ID INT AUTOINCREMENT KEY, Name VARCHAR DEFAULT "anon");`)
	res := mustExec(t, db, `INSERT INTO T (Name = "Ada");`)
	assert.Equal(t, "0", res.Payload()[0]["ID"].String())
	assert.Equal(t, "Ada", res.Payload()[0]["Name"].String())

	res = mustExec(t, db, `INSERT INTO T (ID = 5);`)
	assert.Equal(t, "5", res.Payload()[0]["ID"].String())
	assert.Equal(t, "anon", res.Payload()[0]["Name"].String())
}
