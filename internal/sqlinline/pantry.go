package sqlinline

const QSelectPantryIDByUser = `--sql 7efffaaf-6ae6-4c22-be09-839b19c310b0
select pantry_id
from pantry
where user_id = $1::bigint;
`

const QEnsurePantry = `--sql 3c0544cc-ad3a-4c05-8832-b016b7cb8567
insert into pantry(user_id)
values ($1::bigint)
on conflict (user_id) do update set user_id = excluded.user_id
returning pantry_id;
`
