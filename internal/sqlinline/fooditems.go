package sqlinline

const QListFoodItemsByUser = `--sql 295f4704-c8c0-4196-96cc-d3f017d24f94
select f.item_id, f.pantry_id, f.name, f.category, f.expiry_date, f.quantity
from food_item f
join pantry p on p.pantry_id = f.pantry_id
where p.user_id = $1::bigint
order by f.expiry_date asc, f.item_id asc;
`

const QInsertFoodItem = `--sql 3d989e3c-d0b6-44bb-9997-c5c5cd925f22
insert into food_item(pantry_id, name, category, expiry_date, quantity)
values ($1::bigint, $2::text, $3::text, $4::date, $5::int)
returning item_id;
`

const QDeleteFoodItem = `--sql 97bdfc8f-2e33-4e24-bc29-1dbe3bc19763
delete from food_item
where item_id = $1::bigint;
`

// QLockFoodItem takes the row lock that serializes concurrent donations of
// the same item; it is only valid inside a transaction.
const QLockFoodItem = `--sql c3c22c52-c69c-4899-8ca6-dee1546a02d7
select item_id, pantry_id, name, category, expiry_date, quantity
from food_item
where item_id = $1::bigint
for update;
`

const QUpdateFoodItemQuantity = `--sql ed75f050-bae8-4eb3-98ed-7ea967c17484
update food_item
set quantity = $2::int
where item_id = $1::bigint;
`
