package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/parser"
)

func TestParseCreateTable(t *testing.T) {
	stmt, err := parser.Parse(`CREATE TABLE Users (ID INT AUTOINCREMENT KEY, Name VARCHAR DEFAULT "anon");`)
	require.NoError(t, err)
	ct, ok := stmt.(*ast.CreateTable)
	require.True(t, ok)
	assert.Equal(t, "Users", ct.Table)
	require.Len(t, ct.Columns, 2)
	assert.Equal(t, "ID", ct.Columns[0].Name)
	assert.True(t, ct.Columns[0].AutoIncrement)
	assert.True(t, ct.Columns[0].Key)
	assert.Equal(t, "Name", ct.Columns[1].Name)
	assert.True(t, ct.Columns[1].HasDefault)
	assert.Equal(t, `"anon"`, ct.Columns[1].DefaultExpr)
}

func TestParseCreateIndexUsesByKeyword(t *testing.T) {
	stmt, err := parser.Parse(`CREATE ORDERED INDEX ON T BY X;`)
	require.NoError(t, err)
	ci, ok := stmt.(*ast.CreateIndex)
	require.True(t, ok)
	assert.Equal(t, "ORDERED", ci.Kind)
	assert.Equal(t, "T", ci.Table)
	assert.Equal(t, []string{"X"}, ci.Columns)

	stmt, err = parser.Parse(`CREATE UNORDERED INDEX ON T BY X, Y;`)
	require.NoError(t, err)
	ci = stmt.(*ast.CreateIndex)
	assert.Equal(t, []string{"X", "Y"}, ci.Columns)
}

func TestParsePositionalInsertWithEmptyAndNullSlots(t *testing.T) {
	stmt, err := parser.Parse(`INSERT INTO Users VALUES (NULL, "Ada");`)
	require.NoError(t, err)
	ins := stmt.(*ast.PositionalInsert)
	assert.Equal(t, []string{"", `"Ada"`}, ins.Values)

	stmt, err = parser.Parse(`INSERT INTO Users VALUES (, "Babbage");`)
	require.NoError(t, err)
	ins = stmt.(*ast.PositionalInsert)
	assert.Equal(t, []string{"", `"Babbage"`}, ins.Values)

	stmt, err = parser.Parse(`INSERT INTO Users VALUES (10, DEFAULT);`)
	require.NoError(t, err)
	ins = stmt.(*ast.PositionalInsert)
	assert.Equal(t, []string{"10", ""}, ins.Values)

	stmt, err = parser.Parse(`INSERT INTO Users VALUES (10, );`)
	require.NoError(t, err)
	ins = stmt.(*ast.PositionalInsert)
	assert.Equal(t, []string{"10", ""}, ins.Values)
}

func TestParseNamedInsert(t *testing.T) {
	stmt, err := parser.Parse(`INSERT INTO Users (Name = "Turing", ID = 10);`)
	require.NoError(t, err)
	ins := stmt.(*ast.NamedInsert)
	require.Len(t, ins.Assignments, 2)
	assert.Equal(t, "Name", ins.Assignments[0].Column)
	assert.Equal(t, `"Turing"`, ins.Assignments[0].Expr)
	assert.Equal(t, "ID", ins.Assignments[1].Column)
	assert.Equal(t, "10", ins.Assignments[1].Expr)
}

func TestParseSelectStar(t *testing.T) {
	stmt, err := parser.Parse(`SELECT * FROM Users;`)
	require.NoError(t, err)
	sel := stmt.(*ast.Select)
	require.Len(t, sel.Columns, 1)
	assert.Equal(t, "*", sel.Columns[0].Column)
	assert.Nil(t, sel.Join)
	assert.Equal(t, "", sel.Where)
}

func TestParseSelectWithJoinAndWhere(t *testing.T) {
	stmt, err := parser.Parse(`SELECT User.Name, Post.Text FROM User JOIN Post ON User.ID == Post.AuthorId WHERE Post.AuthorId > 0;`)
	require.NoError(t, err)
	sel := stmt.(*ast.Select)
	require.Len(t, sel.Columns, 2)
	assert.Equal(t, ast.ColumnRef{Table: "User", Column: "Name"}, sel.Columns[0])
	assert.Equal(t, ast.ColumnRef{Table: "Post", Column: "Text"}, sel.Columns[1])
	require.NotNil(t, sel.Join)
	assert.Equal(t, "Post", sel.Join.Table)
	assert.Equal(t, "User.ID == Post.AuthorId", sel.Join.On)
	assert.Equal(t, "Post.AuthorId > 0", sel.Where)
}

func TestParseUpdateWithSetAndWhere(t *testing.T) {
	stmt, err := parser.Parse(`UPDATE Emp SET (Salary = Salary + 50.0) WHERE Salary > 150.0;`)
	require.NoError(t, err)
	upd := stmt.(*ast.Update)
	assert.Equal(t, "Emp", upd.Table)
	require.Len(t, upd.Assignments, 1)
	assert.Equal(t, "Salary", upd.Assignments[0].Column)
	assert.Equal(t, "Salary + 50.0", upd.Assignments[0].Expr)
	assert.Equal(t, "Salary > 150.0", upd.Where)
}

func TestParseDelete(t *testing.T) {
	stmt, err := parser.Parse(`DELETE FROM Users WHERE ID == 1;`)
	require.NoError(t, err)
	del := stmt.(*ast.Delete)
	assert.Equal(t, "Users", del.Table)
	assert.Equal(t, "ID == 1", del.Where)

	stmt, err = parser.Parse(`DELETE FROM Users;`)
	require.NoError(t, err)
	del = stmt.(*ast.Delete)
	assert.Equal(t, "", del.Where)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := parser.Parse(`DELETE FROM Users; DROP TABLE Users;`)
	assert.Error(t, err)
}

func TestParseMissingKeywordFails(t *testing.T) {
	_, err := parser.Parse(`CREATE Users (ID INT);`)
	assert.Error(t, err)

	_, err = parser.Parse(`SELECT * Users;`)
	assert.Error(t, err)
}

func TestParseExpressionCapturePreservesEmbeddedStringWithParens(t *testing.T) {
	stmt, err := parser.Parse(`INSERT INTO T VALUES ("a, b) c", foo(1, 2));`)
	require.NoError(t, err)
	ins := stmt.(*ast.PositionalInsert)
	assert.Equal(t, `"a, b) c"`, ins.Values[0])
	assert.Equal(t, "foo(1, 2)", ins.Values[1])
}
